package persona

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load lê um arquivo de persona (YAML ou JSON) por cima dos valores padrão.
// Com path vazio a persona embutida é devolvida sem alterações.
func Load(path string) (Persona, error) {
	p := Default()
	if strings.TrimSpace(path) == "" {
		return p, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Persona{}, fmt.Errorf("failed to read persona file %s: %w", path, err)
	}

	// Regras do arquivo substituem a lista inteira, a ordem define a prioridade
	if v.IsSet("rules") {
		p.Rules = nil
	}
	if err := v.Unmarshal(&p); err != nil {
		return Persona{}, fmt.Errorf("failed to parse persona file %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return Persona{}, err
	}
	return p, nil
}

// Validate verifica campos obrigatórios e regras vazias
func (p Persona) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("invalid persona: %w", err)
	}
	for _, rule := range p.Rules {
		for _, kw := range rule.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("invalid persona: rule %q has a blank keyword", rule.Name)
			}
		}
	}
	return nil
}
