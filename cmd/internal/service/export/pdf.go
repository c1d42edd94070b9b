package export

import (
	"bytes"
	"sort"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"solartrack/cmd/internal/utils"
)

type rollupTipo struct {
	nome       string
	quantidade int
	total      decimal.Decimal
}

// WritePDF renders the report as an A4 document: a title and info
// block, a per-service-type rollup sorted by total descending, then the
// detail table. gofpdf paginates the detail table automatically.
func WritePDF(relatorio *Relatorio) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	titulo := relatorio.Nome
	if titulo == "" {
		titulo = "Relatório de Medição"
	}
	pdf.CellFormat(0, 10, tr(titulo), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	periodo := "Período: " + formatPeriodo(relatorio.DataInicio, relatorio.DataFim)
	pdf.CellFormat(0, 6, tr(periodo), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Gerado em: "+relatorio.GeradoEm.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(resumoLinha(relatorio)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	escreverRollup(pdf, tr, relatorio)
	escreverDetalhe(pdf, tr, relatorio)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatPeriodo(inicio, fim string) string {
	if inicio == "" && fim == "" {
		return "todo o histórico"
	}
	if inicio == "" {
		return "até " + utils.FormatDateBR(fim)
	}
	if fim == "" {
		return "a partir de " + utils.FormatDateBR(inicio)
	}
	return utils.FormatDateBR(inicio) + " a " + utils.FormatDateBR(fim)
}

func resumoLinha(relatorio *Relatorio) string {
	return "Lançamentos: " + decimal.NewFromInt(int64(len(relatorio.Lancamentos))).String() +
		"  |  Clientes: " + decimal.NewFromInt(int64(relatorio.TotalClientes)).String() +
		"  |  Total: R$ " + relatorio.TotalValor.StringFixed(2)
}

// escreverRollup aggregates the entries by service type and prints one
// line per type, largest total first. Ties keep a stable alphabetical
// order so repeated exports of the same data match byte for byte.
func escreverRollup(pdf *gofpdf.Fpdf, tr func(string) string, relatorio *Relatorio) {
	porTipo := map[string]*rollupTipo{}
	for _, l := range relatorio.Lancamentos {
		nome := NomeTipoServico(l.TipoServico)
		r, ok := porTipo[nome]
		if !ok {
			r = &rollupTipo{nome: nome}
			porTipo[nome] = r
		}
		r.quantidade++
		r.total = r.total.Add(l.ValorServico)
	}

	rollup := make([]*rollupTipo, 0, len(porTipo))
	for _, r := range porTipo {
		rollup = append(rollup, r)
	}
	sort.Slice(rollup, func(i, j int) bool {
		if !rollup[i].total.Equal(rollup[j].total) {
			return rollup[i].total.GreaterThan(rollup[j].total)
		}
		return rollup[i].nome < rollup[j].nome
	})

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, tr("Resumo por Tipo de Serviço"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 6, tr("Tipo de Serviço"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 6, tr("Quantidade"), "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 6, tr("Valor Total"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range rollup {
		pdf.CellFormat(90, 6, tr(r.nome), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, decimal.NewFromInt(int64(r.quantidade)).String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, "R$ "+r.total.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

func escreverDetalhe(pdf *gofpdf.Fpdf, tr func(string) string, relatorio *Relatorio) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, tr("Lançamentos"), "", 1, "L", false, 0, "")

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(30, 6, tr("Equipe"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(42, 6, tr("Cliente"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(24, 6, tr("Contrato"), "1", 0, "C", true, 0, "")
		pdf.CellFormat(34, 6, tr("Tipo"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(36, 6, tr("Subitem"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(24, 6, tr("Valor"), "1", 1, "R", true, 0, "")
	}
	header()

	pdf.SetFont("Helvetica", "", 8)
	for _, l := range relatorio.Lancamentos {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 8)
		}

		equipe, _ := equipeEmpresa(l)
		pdf.CellFormat(30, 6, tr(truncate(equipe, 20)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(42, 6, tr(truncate(l.NomeCliente, 28)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(24, 6, utils.FormatDateBR(l.DataContrato), "1", 0, "C", false, 0, "")
		pdf.CellFormat(34, 6, tr(NomeTipoServico(l.TipoServico)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(36, 6, tr(truncate(l.Subitem(), 24)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(24, 6, l.ValorServico.StringFixed(2), "1", 1, "R", false, 0, "")
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
