package trustlevel

// MarshalText implements encoding.TextMarshaler so a Level round-trips
// through the TOML keystore roster as its name, e.g. `trust_level = "full"`.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
