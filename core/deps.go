package core

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// Deps are the collaborators shared by every form and list controller of a screen.
type Deps struct {
	Validate   *validator.Validate
	Translator ut.Translator
	Notifier   Notifier
	Logger     Logger
}

// NewDeps returns deps with a freshly initialised validator.
func NewDeps(n Notifier, logger Logger) Deps {
	validate := validator.New()
	translator := NewTranslator()
	InitValidators(validate, translator)
	return Deps{
		Validate:   validate,
		Translator: translator,
		Notifier:   n,
		Logger:     logger,
	}
}

// WithNotifier returns a copy of d sending notices to n.
func (d Deps) WithNotifier(n Notifier) Deps {
	d.Notifier = n
	return d
}
