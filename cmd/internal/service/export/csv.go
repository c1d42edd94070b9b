package export

import (
	"bytes"
	"encoding/csv"

	"solartrack/cmd/internal/utils"
)

var csvHeader = []string{
	"Equipe",
	"Empresa",
	"Cliente",
	"Data do Contrato",
	"Tipo de Serviço",
	"Subitem do Serviço",
	"Valor do Serviço",
	"Descrição",
}

// WriteCSV renders the report as UTF-8 CSV with a fixed header. One
// row per lançamento, in the order the report listed them; monetary
// values carry two decimal places.
func WriteCSV(relatorio *Relatorio) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, l := range relatorio.Lancamentos {
		equipe, empresa := equipeEmpresa(l)
		row := []string{
			equipe,
			empresa,
			l.NomeCliente,
			utils.FormatDateBR(l.DataContrato),
			NomeTipoServico(l.TipoServico),
			l.Subitem(),
			l.ValorServico.StringFixed(2),
			l.DescricaoExport(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
