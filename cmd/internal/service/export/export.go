package export

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"solartrack/cmd/internal/domain/entity"
)

// Relatorio is the fully materialized report handed to the CSV and PDF
// writers. Totals come pre-computed so both formats print the same
// figures the report page showed.
type Relatorio struct {
	Nome          string
	DataInicio    string // YYYY-MM-DD, may be empty
	DataFim       string
	GeradoEm      time.Time
	Lancamentos   []*entity.Lancamento
	TotalClientes int
	TotalValor    decimal.Decimal
}

var nomesTipoServico = map[string]string{
	entity.ServicoInstalacao:    "Instalação",
	entity.ServicoAditivo:       "Aditivo",
	entity.ServicoDesconto:      "Desconto",
	entity.ServicoPadraoEntrada: "Padrão de Entrada",
	entity.ServicoVisitaTecnica: "Visita Técnica",
	entity.ServicoObraCivil:     "Obra Civil",
}

// NomeTipoServico maps a service code to its display label, falling
// back to the raw code for anything unknown.
func NomeTipoServico(codigo string) string {
	if nome, ok := nomesTipoServico[codigo]; ok {
		return nome
	}
	return codigo
}

// Filename builds `medicao-<slug>-<date>.<ext>` from the report name,
// keeping only letters and digits so the result is safe on any
// filesystem.
func Filename(nome, ext string, quando time.Time) string {
	var slug strings.Builder
	for _, r := range strings.ToLower(nome) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			slug.WriteRune(r)
		case slug.Len() > 0 && !strings.HasSuffix(slug.String(), "-"):
			slug.WriteByte('-')
		}
	}

	base := strings.Trim(slug.String(), "-")
	if base == "" {
		base = "relatorio"
	}
	return "medicao-" + base + "-" + quando.Format("2006-01-02") + "." + ext
}

func equipeEmpresa(l *entity.Lancamento) (string, string) {
	if l.Equipe == nil {
		return "", ""
	}
	if l.Equipe.Empresa == nil {
		return l.Equipe.Nome, ""
	}
	return l.Equipe.Nome, l.Equipe.Empresa.Nome
}
