package compose

import (
	"golang.org/x/text/language"

	"github.com/kongsi/inventory-client/internal/domain/apierror"
	"github.com/kongsi/inventory-client/internal/domain/entity"
	"github.com/kongsi/inventory-client/internal/reactive"
)

// ViewError estado de presentación del último error de la vista.
type ViewError struct {
	Name      string // clave i18n; vacía = sin error
	Type      string
	IsShowing bool // solo los errores generales muestran el banner
}

// ErrorView proyección de un ServerError a mensajes de vista: banner genérico
// para type "general", mensajes por campo para type "input".
type ErrorView struct {
	tag   language.Tag
	state *reactive.Cell[ViewError]
}

// NewErrorView construye la proyección para las preferencias de idioma dadas.
func NewErrorView(prefs ...string) *ErrorView {
	return &ErrorView{
		tag:   MatchLanguage(prefs...),
		state: reactive.NewCell(ViewError{Type: apierror.TypeGeneral}),
	}
}

// State devuelve el estado de presentación vigente.
func (v *ErrorView) State() ViewError {
	return v.state.Get()
}

// Set registra el error normalizado como estado de vista.
func (v *ErrorView) Set(err *apierror.ServerError) {
	v.state.Set(ViewError{
		Name:      err.Name,
		Type:      err.Type,
		IsShowing: err.Type == apierror.TypeGeneral,
	})
}

// MessagesFor devuelve los mensajes localizados para la categoría dada, o nil
// si el error vigente es de otra categoría o no hay error.
func (v *ErrorView) MessagesFor(typ string) []string {
	st := v.state.Get()
	if st.Type != typ || st.Name == "" {
		return nil
	}
	return []string{Message(v.tag, st.Name)}
}

// SortColumnOrderTexts pares clave/etiqueta localizados para el selector de
// ordenamiento del listado de productos.
func SortColumnOrderTexts(prefs ...string) []struct {
	Key   entity.SortColumnOrder
	Value string
} {
	tag := MatchLanguage(prefs...)
	keys := []entity.SortColumnOrder{
		entity.SortIDAsc, entity.SortIDDesc,
		entity.SortNameAsc, entity.SortNameDesc,
		entity.SortPriceAsc, entity.SortPriceDesc,
	}
	out := make([]struct {
		Key   entity.SortColumnOrder
		Value string
	}, 0, len(keys))
	for _, k := range keys {
		out = append(out, struct {
			Key   entity.SortColumnOrder
			Value string
		}{k, Message(tag, "label.product.sortByList."+string(k))})
	}
	return out
}
