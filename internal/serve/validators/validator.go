package validators

// Validator collects every violation instead of stopping at the first one, so callers can fix all fields in one
// round trip.
type Validator struct {
	Errors map[string]any
	// Messages holds the error messages in the order they were added.
	Messages []string
}

func NewValidator() *Validator {
	return &Validator{
		Errors:   make(map[string]any),
		Messages: make([]string, 0),
	}
}

func (v *Validator) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.addError(key, message)
	}
}

// CheckError is a convenience method for checking if an error is nil
func (v *Validator) CheckError(err error, key, message string) *Validator {
	if err != nil && message == "" {
		message = err.Error()
	}
	v.Check(err == nil, key, message)
	return v
}

// addError records the first message for each key.
func (v *Validator) addError(key, message string) {
	if _, ok := v.Errors[key]; ok {
		return
	}
	v.Errors[key] = message
	v.Messages = append(v.Messages, message)
}
