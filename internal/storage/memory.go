package storage

// Memory is an in-process KV. Setting ReadErr or WriteErr makes every
// Get or Set fail with that error, which is how quota and disabled-storage
// failures are simulated.
type Memory struct {
	values   map[string]string
	ReadErr  error
	WriteErr error
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	if m.ReadErr != nil {
		return "", false, m.ReadErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.values[key] = value
	return nil
}
