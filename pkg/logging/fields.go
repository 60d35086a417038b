package logging

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Engine-specific field helpers

func NodeID(id string) Field {
	return String("node", id)
}

func PeerID(id string) Field {
	return String("peer", id)
}

func Key(key string) Field {
	return String("key", key)
}

func Generation(gen uint64) Field {
	return Uint64("generation", gen)
}
