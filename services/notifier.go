package services

// Colaboradores externos de notificación. Siempre se invocan después
// del commit y en modo best-effort: un fallo se registra, nunca se
// propaga al caller HTTP.

// Correo envía un mensaje HTML a un destinatario.
type Correo interface {
	EnviarCorreo(destinatario, asunto, html string) error
}

// Push entrega una notificación push al token de dispositivo indicado.
type Push interface {
	Enviar(to, titulo, cuerpo string, data map[string]interface{}) error
}
