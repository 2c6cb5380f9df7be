package entity

// Permissions permisos efectivos del usuario sobre el módulo de productos.
// Cuatro flags fijos; el backend los calcula a partir de los roles asignados
// y de la elevación por modo admin.
type Permissions struct {
	CanAddProduct    bool `json:"canAddProduct"`
	CanViewProduct   bool `json:"canViewProduct"`
	CanEditProduct   bool `json:"canEditProduct"`
	CanDeleteProduct bool `json:"canDeleteProduct"`
}

// User sesión del usuario autenticado.
// Se crea en el login, se completa con GetUser y se limpia en el logout.
// Una sesión parcial (solo AccessToken y Email) es válida: el fetch de perfil
// posterior al login puede fallar sin invalidar el token.
type User struct {
	AccessToken string      `json:"accessToken"`
	Email       string      `json:"email"`
	IsAdmin     bool        `json:"isAdmin"`
	Permissions Permissions `json:"permissions"`
}
