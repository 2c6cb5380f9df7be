// Package reactive implementa el contenedor observable mínimo sobre el que se
// cablean las cascadas de los stores (selección → criterio derivado → refetch).
package reactive

// Cell contenedor de un valor con watchers. Los watchers se ejecutan de forma
// síncrona, en orden de registro y en la goroutine del llamador. No es seguro
// para uso concurrente: los stores son de una sola goroutine por contrato.
type Cell[T any] struct {
	value    T
	watchers []func(T)
}

// NewCell crea una celda con el valor inicial dado (sin notificar).
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Get devuelve el valor actual.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set asigna el valor y notifica a todos los watchers.
func (c *Cell[T]) Set(v T) {
	c.value = v
	for _, w := range c.watchers {
		w(v)
	}
}

// SetSilent asigna el valor sin notificar. Se usa para consolidar estado
// derivado antes de que la cascada dispare un único refetch.
func (c *Cell[T]) SetSilent(v T) {
	c.value = v
}

// Watch registra un watcher que recibirá cada valor asignado con Set.
func (c *Cell[T]) Watch(fn func(T)) {
	c.watchers = append(c.watchers, fn)
}
