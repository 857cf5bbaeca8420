package services

import "errors"

// Errores centinela que los controllers traducen a códigos HTTP.
var (
	// ErrNoEncontrado -> 404.
	ErrNoEncontrado = errors.New("no encontrado")
	// ErrSinNegocio -> 404 en /MiNegocio: el usuario no tiene vínculo en Personal.
	ErrSinNegocio = errors.New("no tienes un negocio vinculado")
	// ErrEstatusInvalido -> 400: literal de estatus fuera del par confirmada/rechazada.
	ErrEstatusInvalido = errors.New("estatus inválido: debe ser 'confirmada' o 'rechazada'")
	// ErrTransicionInvalida -> 409: el estado actual no admite la transición.
	ErrTransicionInvalida = errors.New("transición de estado no permitida")
)
