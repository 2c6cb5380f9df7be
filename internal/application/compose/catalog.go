// Package compose agrupa los adaptadores de vista que viven encima de los
// stores: proyección de errores a mensajes localizados, toggle de modo admin
// y reglas de campos obligatorios. Los componentes de UI los consumen tal cual.
package compose

import "golang.org/x/text/language"

// Idiomas soportados; el primero es el fallback.
var supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

// MatchLanguage resuelve el mejor idioma soportado para las preferencias del
// usuario (ej. "es-CO", "en-US"). Sin preferencias devuelve inglés.
func MatchLanguage(prefs ...string) language.Tag {
	if len(prefs) == 0 {
		return language.English
	}
	tags := make([]language.Tag, 0, len(prefs))
	for _, p := range prefs {
		if t, err := language.Parse(p); err == nil {
			tags = append(tags, t)
		}
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// Message devuelve el mensaje localizado para una clave estilo i18n.
// Cae al inglés si el idioma no tiene la clave, y a la clave misma si nadie
// la tiene (mismo comportamiento visible que un catálogo incompleto en la UI).
func Message(tag language.Tag, name string) string {
	if m, ok := messages[tag]; ok {
		if s, ok := m[name]; ok {
			return s
		}
	}
	if s, ok := messages[language.English][name]; ok {
		return s
	}
	return name
}

var messages = map[language.Tag]map[string]string{
	language.English: {
		"error.general":            "Something went wrong. Please try again.",
		"error.invalidEmail":       "Please enter a valid email.",
		"error.invalidPassword":    "Please enter a password.",
		"error.invalidCredentials": "Invalid email/password.",

		"error.insufficientPrivilege":                  "You don't have the privilege to perform this action.",
		"error.insufficientPrivilege.canAddProduct":    "You don't have the privilege to add products.",
		"error.insufficientPrivilege.canViewProduct":   "You don't have the privilege to view products.",
		"error.insufficientPrivilege.canEditProduct":   "You don't have the privilege to edit products.",
		"error.insufficientPrivilege.canDeleteProduct": "You don't have the privilege to delete products.",

		"error.session.expired": "Your session has expired. Please log in again.",

		"error.input.addProduct.nameRequired":     "Name is required",
		"error.input.addProduct.priceRequired":    "Price is required",
		"error.input.addProduct.supplierRequired": "Supplier is required",
		"error.input.addUserRoles.nameRequired":   "Name is required",

		"label.product.sortByList.idAsc":     "ID (Oldest first)",
		"label.product.sortByList.idDesc":    "ID (Newest first)",
		"label.product.sortByList.nameAsc":   "Name (A-Z)",
		"label.product.sortByList.nameDesc":  "Name (Z-A)",
		"label.product.sortByList.priceAsc":  "Price (Lowest first)",
		"label.product.sortByList.priceDesc": "Price (Highest first)",
	},
	language.Spanish: {
		"error.general":            "Algo salió mal. Intente de nuevo.",
		"error.invalidEmail":       "Ingrese un email válido.",
		"error.invalidPassword":    "Ingrese una contraseña.",
		"error.invalidCredentials": "Email o contraseña inválidos.",

		"error.insufficientPrivilege":                  "No tiene privilegios para realizar esta acción.",
		"error.insufficientPrivilege.canAddProduct":    "No tiene privilegios para agregar productos.",
		"error.insufficientPrivilege.canViewProduct":   "No tiene privilegios para ver productos.",
		"error.insufficientPrivilege.canEditProduct":   "No tiene privilegios para editar productos.",
		"error.insufficientPrivilege.canDeleteProduct": "No tiene privilegios para eliminar productos.",

		"error.session.expired": "Su sesión expiró. Inicie sesión de nuevo.",

		"error.input.addProduct.nameRequired":     "El nombre es obligatorio",
		"error.input.addProduct.priceRequired":    "El precio es obligatorio",
		"error.input.addProduct.supplierRequired": "El proveedor es obligatorio",
		"error.input.addUserRoles.nameRequired":   "El nombre es obligatorio",

		"label.product.sortByList.idAsc":     "ID (más antiguo primero)",
		"label.product.sortByList.idDesc":    "ID (más reciente primero)",
		"label.product.sortByList.nameAsc":   "Nombre (A-Z)",
		"label.product.sortByList.nameDesc":  "Nombre (Z-A)",
		"label.product.sortByList.priceAsc":  "Precio (menor primero)",
		"label.product.sortByList.priceDesc": "Precio (mayor primero)",
	},
}
