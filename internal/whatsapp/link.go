package whatsapp

import (
	"net/url"
	"strings"

	"github.com/leo-otica/otica-erp/internal/validators"
)

const countryCode = "55"

// DefaultTemplate é a mensagem de recall quando a loja não configurou uma.
const DefaultTemplate = "Olá {name}, sentimos sua falta! Já faz um tempo desde sua última visita. Vamos agendar um check-up?"

// Message substitui {name} no template configurado pela loja.
func Message(template, clientName string) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}
	return strings.ReplaceAll(template, "{name}", clientName)
}

// Link monta o deep link wa.me com a mensagem pré-preenchida.
func Link(phone, clientName, template string) string {
	digits := validators.DigitsOnly(phone)

	msg := Message(template, clientName)

	// QueryEscape codifica espaço como "+"; o WhatsApp espera %20
	escaped := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")

	return "https://wa.me/" + countryCode + digits + "?text=" + escaped
}
