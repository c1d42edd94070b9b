package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solartrack/cmd/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

var quando = time.Date(2025, 4, 15, 10, 30, 0, 0, time.UTC)

func TestFilenameSlugsAndDates(t *testing.T) {
	assert.Equal(t, "medicao-janeiro-2025-2025-04-15.csv", Filename("Janeiro 2025", "csv", quando))
	assert.Equal(t, "medicao-fechamento-q1-2025-04-15.pdf", Filename("Fechamento: Q1!", "pdf", quando))
	assert.Equal(t, "medicao-relatorio-2025-04-15.csv", Filename("", "csv", quando))
	assert.Equal(t, "medicao-relatorio-2025-04-15.csv", Filename("!!!", "csv", quando))
}

func TestNomeTipoServicoFallsBackToCode(t *testing.T) {
	assert.Equal(t, "Visita Técnica", NomeTipoServico(entity.ServicoVisitaTecnica))
	assert.Equal(t, "outro_codigo", NomeTipoServico("outro_codigo"))
}

func relatorioFixture() *Relatorio {
	equipe := &entity.Equipe{
		Nome:    "Alfa",
		Empresa: &entity.Empresa{Nome: "Sol, Forte Ltda"},
	}
	return &Relatorio{
		Nome:     "Março",
		GeradoEm: quando,
		Lancamentos: []*entity.Lancamento{
			{
				Equipe: equipe, NomeCliente: "Maria Souza", DataContrato: "2025-03-10",
				TipoServico: entity.ServicoInstalacao, ValorServico: dec("850"),
			},
			{
				Equipe: equipe, NomeCliente: "João Lima",
				TipoServico: entity.ServicoDesconto, MotivoDesconto: "Fidelização",
				ValorServico: dec("-50"),
			},
		},
		TotalClientes: 2,
		TotalValor:    dec("800"),
	}
}

func TestWriteCSVLayout(t *testing.T) {
	payload, err := WriteCSV(relatorioFixture())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Equipe,Empresa,Cliente,Data do Contrato,Tipo de Serviço,Subitem do Serviço,Valor do Serviço,Descrição", lines[0])

	// Company name carries a comma and must come out quoted.
	assert.Contains(t, lines[1], `"Sol, Forte Ltda"`)
	assert.Contains(t, lines[1], "850.00")
	assert.Contains(t, lines[1], "10/03/2025")
	assert.Contains(t, lines[1], "Instalação")

	// Missing contract date renders the placeholder; the discount keeps
	// its sign and its reason fills subitem and description.
	assert.Contains(t, lines[2], "Não informado")
	assert.Contains(t, lines[2], "-50.00")
	assert.Equal(t, 2, strings.Count(lines[2], "Fidelização"))
}

func TestWritePDFStructure(t *testing.T) {
	payload, err := WritePDF(relatorioFixture())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
	assert.Greater(t, len(payload), 1000)
}
