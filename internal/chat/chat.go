package chat

import (
	"strings"

	"github.com/xnorik/xnorik-backend/internal/status"
)

// topic pairs a keyword set with its canned reply. Topics are evaluated in
// order and the first match wins.
type topic struct {
	keywords []string
	reply    func() string
}

var topics = []topic{
	{
		keywords: []string{"hola", "buenas", "buenos dias", "buenos días", "saludos", "hey"},
		reply: fixed("¡Hola! Bienvenido a Xnorik. Puedes preguntarme qué es Xnorik, cómo funciona, " +
			"qué servicios ofrecemos o las etapas del mantenimiento."),
	},
	{
		keywords: []string{"que es", "qué es", "xnorik", "quienes son", "quiénes son"},
		reply: fixed("Xnorik es un servicio web que prioriza la comunicación entre un técnico de " +
			"reparación y su respectivo cliente, brindando confianza y seguridad."),
	},
	{
		keywords: []string{"como funciona", "cómo funciona", "funcionamiento"},
		reply: fixed("Es muy sencillo: tu técnico registra el servicio y te entrega un código de " +
			"seguimiento de 8 caracteres. Con ese código puedes consultar el estado de tu " +
			"computadora en cualquier momento."),
	},
	{
		keywords: []string{"servicios", "reparan", "mantenimiento de", "arreglan"},
		reply: fixed("Ofrecemos seguimiento de mantenimiento y reparación de computadoras: " +
			"diagnóstico, limpieza, reparación y pruebas, con actualización del estado en cada etapa."),
	},
	{
		keywords: []string{"contacto", "contactar", "telefono", "teléfono", "correo", "email"},
		reply: fixed("Puedes comunicarte directamente con tu técnico asignado, o escribirnos a " +
			"soporte@xnorik.com."),
	},
	{
		keywords: []string{"codigo", "código", "rastrear", "seguimiento", "ticket", "seguir"},
		reply: fixed("Tu código de seguimiento tiene 8 caracteres (letras y números) y te lo entrega " +
			"tu técnico al registrar el servicio. Ingrésalo en la página principal para ver el " +
			"estado de tu reparación."),
	},
	{
		keywords: []string{"estado", "estados", "etapas", "fases", "proceso"},
		reply:    statusListReply,
	},
	{
		keywords: []string{"gracias", "muchas gracias", "genial"},
		reply:    fixed("¡Con gusto! Si necesitas algo más, aquí estaré."),
	},
	{
		keywords: []string{"tiempo real", "en vivo", "actualiza", "al instante"},
		reply: fixed("Sí, el seguimiento se actualiza en tiempo real: cada vez que tu técnico cambia " +
			"el estado, lo verás reflejado al instante."),
	},
}

const fallbackReply = "Lo siento, no entendí tu pregunta. Puedo ayudarte con: qué es Xnorik, " +
	"cómo funciona, nuestros servicios, tu código de seguimiento o las etapas del mantenimiento."

// Respond classifies an utterance against the topic table and returns the
// matching canned reply, or the fallback when nothing matches. Deterministic
// and stateless.
func Respond(utterance string) string {
	input := strings.ToLower(strings.TrimSpace(utterance))
	if input == "" {
		return fallbackReply
	}

	for _, t := range topics {
		for _, keyword := range t.keywords {
			if strings.Contains(input, keyword) {
				return t.reply()
			}
		}
	}
	return fallbackReply
}

func fixed(s string) func() string {
	return func() string { return s }
}

// statusListReply is the only dynamic reply: it enumerates the workflow
// stages from the status catalog.
func statusListReply() string {
	var b strings.Builder
	b.WriteString("Las etapas del mantenimiento son: ")
	for i, stage := range status.Stages() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(stage.Label)
		b.WriteString(" (")
		b.WriteString(stage.Description)
		b.WriteString(")")
	}
	b.WriteString(".")
	return b.String()
}
