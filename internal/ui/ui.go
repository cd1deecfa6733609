// Package ui provides the interactive prompts of the setup wizard.
package ui

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

type ConfirmationOption string

const (
	ConfirmationDefaultNo  ConfirmationOption = "N"
	ConfirmationDefaultYes ConfirmationOption = "y"
)

// ErrCancelled is returned when the user interrupts a prompt with Ctrl+C.
var ErrCancelled = errors.New("setup cancelled")

// Prompter is implemented by Terminal, and by fakes in tests.
type Prompter interface {
	Select(label string, items []string) (string, error)
	Input(label, defaultValue string, validate func(string) error) (string, error)
	Secret(label string, validate func(string) error) (string, error)
	ConfirmWithDefault(label string, option ConfirmationOption) (bool, error)
}

// Terminal prompts on the process stdin/stdout.
type Terminal struct{}

var _ Prompter = Terminal{}

// ConfirmWithDefault prompts the user for a yes/no confirmation with specified default.
func (Terminal) ConfirmWithDefault(label string, option ConfirmationOption) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	defaultYes := option == ConfirmationDefaultYes
	if defaultYes {
		prompt.Default = "y"
	}

	res, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrCancelled
		}
		// promptui returns ErrAbort when the answer is "N".
		return false, nil
	}

	if res == "" {
		return defaultYes, nil
	}
	return res == "y" || res == "Y", nil
}

// Select presents a list of options for the user to choose from.
func (Terminal) Select(label string, items []string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no options to select for %q", label)
	}

	sel := promptui.Select{
		Label: label,
		Items: items,
	}

	_, result, err := sel.Run()
	if err != nil {
		return "", promptError(err)
	}
	return result, nil
}

// Input prompts the user for text input, validate runs on every keystroke and on submit.
func (Terminal) Input(label, defaultValue string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   defaultValue,
		AllowEdit: true,
		Validate:  validate,
	}

	res, err := prompt.Run()
	if err != nil {
		return "", promptError(err)
	}
	return res, nil
}

// Secret prompts for a value without echoing it.
func (Terminal) Secret(label string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Mask:     '*',
		Validate: validate,
	}

	res, err := prompt.Run()
	if err != nil {
		return "", promptError(err)
	}
	return res, nil
}

func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrCancelled
	}
	return fmt.Errorf("running prompt: %w", err)
}
