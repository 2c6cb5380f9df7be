package compose

import (
	"golang.org/x/text/language"

	"github.com/kongsi/inventory-client/internal/domain/apierror"
)

// Rules reglas de validación de formularios, localizadas.
type Rules struct {
	tag language.Tag
}

// NewRules construye las reglas para las preferencias de idioma dadas.
func NewRules(prefs ...string) *Rules {
	return &Rules{tag: MatchLanguage(prefs...)}
}

// RuleIfNil regla de campo obligatorio: devuelve un error de tipo "input" con
// el nombre dado cuando el valor es nil; nil cuando el campo está presente.
func (r *Rules) RuleIfNil(errName string) func(value any) error {
	return func(value any) error {
		if value == nil {
			return &apierror.ServerError{
				Name:    errName,
				Type:    apierror.TypeInput,
				Message: Message(r.tag, errName),
			}
		}
		return nil
	}
}
