// Package classifier implementa o responder de fallback por palavras-chave.
package classifier

import (
	"strings"

	"github.com/vitormoschetta/rameezbot/internal/persona"
)

// EchoPlaceholder é substituído pela mensagem original na resposta padrão
const EchoPlaceholder = "%s"

type rule struct {
	name     string
	keywords []string
	reply    string
}

// Classifier mapeia uma mensagem para uma resposta fixa. É imutável depois de
// criado e pode ser usado por várias goroutines.
type Classifier struct {
	rules        []rule
	defaultReply string
}

// New cria o classificador copiando as regras na ordem recebida
func New(rules []persona.KeywordRule, defaultReply string) *Classifier {
	c := &Classifier{
		rules:        make([]rule, 0, len(rules)),
		defaultReply: defaultReply,
	}
	for _, r := range rules {
		keywords := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		c.rules = append(c.rules, rule{name: r.Name, keywords: keywords, reply: r.Reply})
	}
	return c
}

// FromPersona cria o classificador a partir das regras da persona
func FromPersona(p persona.Persona) *Classifier {
	return New(p.Rules, p.DefaultReply)
}

// Classify devolve a resposta do primeiro bucket que casar ou a resposta padrão
// com a mensagem ecoada.
func (c *Classifier) Classify(message string) string {
	if idx := c.match(message); idx >= 0 {
		return c.rules[idx].reply
	}
	return strings.Replace(c.defaultReply, EchoPlaceholder, message, 1)
}

// Match informa o nome do bucket vencedor
func (c *Classifier) Match(message string) (string, bool) {
	idx := c.match(message)
	if idx < 0 {
		return "", false
	}
	return c.rules[idx].name, true
}

func (c *Classifier) match(message string) int {
	lower := strings.ToLower(message)
	for i, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return i
			}
		}
	}
	return -1
}
