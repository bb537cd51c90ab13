package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gita-wellness/internal/domain"
)

// ResultMessage es el contenido del correo de resultados: resumen del
// resultado mas la terna recomendada.
type ResultMessage struct {
	Title    string
	Subtitle string
	Bundle   domain.RecommendationBundle
}

// Sender define la interfaz para el envio del correo de resultados.
// Es fire-and-forget desde los servicios: un fallo se loguea y nunca
// bloquea la presentacion del resultado al usuario.
type Sender interface {
	SendResult(ctx context.Context, toEmail, name string, msg ResultMessage) error
}

type disabledSender struct {
	reason string
}

// NewDisabledSender devuelve un sender que descarta los correos sin fallar.
// Se usa cuando no hay proveedor configurado; el resultado ya se entrega por
// la respuesta HTTP, asi que el envio se omite en silencio.
func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendResult(_ context.Context, _ string, _ string, _ ResultMessage) error {
	return nil
}

// buildResultHTML arma el cuerpo HTML del correo de resultados.
func buildResultHTML(name string, msg ResultMessage) string {
	if strings.TrimSpace(name) == "" {
		name = "User"
	}
	var b strings.Builder
	b.WriteString(`<div style="font-family: sans-serif; line-height: 1.5;">`)
	fmt.Fprintf(&b, "<h2>Namaste %s</h2>", html.EscapeString(name))
	fmt.Fprintf(&b, "<p><strong>Result Summary:</strong><br/>%s</p>", html.EscapeString(msg.Title))
	if msg.Subtitle != "" {
		fmt.Fprintf(&b, "<p><strong>Details:</strong><br/>%s</p>", html.EscapeString(msg.Subtitle))
	}
	b.WriteString("<hr/><h3>Recommended Mantra</h3>")
	fmt.Fprintf(&b, "<p><strong>%s</strong></p>", html.EscapeString(msg.Bundle.Mantra.Text))
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(msg.Bundle.Mantra.Explanation))
	b.WriteString("<hr/><h3>Recommended Song</h3>")
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(msg.Bundle.Song.Title))
	fmt.Fprintf(&b, `<p><a href="%s">%s</a></p>`, msg.Bundle.Song.URL, html.EscapeString(msg.Bundle.Song.URL))
	b.WriteString("<hr/><h3>Wisdom from the Bhagavad Gita</h3>")
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(msg.Bundle.Story.StoryText))
	b.WriteString("<hr/><p>Stay balanced, stay peaceful.</p>")
	b.WriteString("<p>Gita Wellness</p></div>")
	return b.String()
}
