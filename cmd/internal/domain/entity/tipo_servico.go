package entity

import "github.com/shopspring/decimal"

// ModeloCobranca is the billing model of a service type: per installed
// panel or per kWp of installed power.
type ModeloCobranca string

const (
	CobrancaPainel ModeloCobranca = "painel"
	CobrancaKwp    ModeloCobranca = "kwp"
)

// Service type codes. The first two are the installation variants; the
// rest are auxiliary services whose value comes straight from the
// request instead of the pricing cascade.
const (
	ServicoInstalacao       = "instalacao"
	ServicoInstalacaoPainel = "instalacao_painel"
	ServicoInstalacaoKwp    = "instalacao_kwp"
	ServicoAditivo          = "aditivo"
	ServicoDesconto         = "desconto"
	ServicoPadraoEntrada    = "padrao_entrada"
	ServicoVisitaTecnica    = "visita_tecnica"
	ServicoObraCivil        = "obra_civil"
)

type TipoServico struct {
	ID             string         `gorm:"primaryKey"`
	Codigo         string         `gorm:"not null;uniqueIndex"`
	Nome           string         `gorm:"not null"`
	Descricao      string
	ModeloCobranca ModeloCobranca `gorm:"not null;default:painel"`

	// ValorUnitario is the optional fixed catalog price, consulted by
	// the pricing cascade after company-level prices.
	ValorUnitario *decimal.Decimal `gorm:"type:decimal(10,2)"`

	Ativo     bool  `gorm:"not null;default:true"`
	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`
}

// CatalogoTiposServico is the fixed service-type catalog seeded on
// startup. Installation prices are company-defined, so the catalog
// carries no fixed unit value for them.
func CatalogoTiposServico() []*TipoServico {
	return []*TipoServico{
		{
			ID:             ServicoInstalacaoPainel,
			Codigo:         ServicoInstalacaoPainel,
			Nome:           "Instalação (por painel)",
			Descricao:      "Instalação de sistema solar fotovoltaico cobrada por painel instalado. Valor definido pela empresa.",
			ModeloCobranca: CobrancaPainel,
			Ativo:          true,
		},
		{
			ID:             ServicoInstalacaoKwp,
			Codigo:         ServicoInstalacaoKwp,
			Nome:           "Instalação (por kWp)",
			Descricao:      "Instalação de sistema solar fotovoltaico cobrada por kWp de potência. Valor definido pela empresa.",
			ModeloCobranca: CobrancaKwp,
			Ativo:          true,
		},
		{
			ID:             ServicoAditivo,
			Codigo:         ServicoAditivo,
			Nome:           "Aditivo",
			Descricao:      "Valor adicional aplicado ao orçamento principal por solicitações extras.",
			ModeloCobranca: CobrancaPainel,
			Ativo:          true,
		},
		{
			ID:             ServicoDesconto,
			Codigo:         ServicoDesconto,
			Nome:           "Desconto",
			Descricao:      "Valor de desconto aplicado ao orçamento total.",
			ModeloCobranca: CobrancaPainel,
			Ativo:          true,
		},
		{
			ID:             ServicoPadraoEntrada,
			Codigo:         ServicoPadraoEntrada,
			Nome:           "Padrão de Entrada",
			Descricao:      "Adequação ou instalação do padrão de entrada de energia.",
			ModeloCobranca: CobrancaPainel,
			Ativo:          true,
		},
		{
			ID:             ServicoVisitaTecnica,
			Codigo:         ServicoVisitaTecnica,
			Nome:           "Visita Técnica",
			Descricao:      "Visita técnica para avaliação ou suporte no local.",
			ModeloCobranca: CobrancaPainel,
			Ativo:          true,
		},
		{
			ID:             ServicoObraCivil,
			Codigo:         ServicoObraCivil,
			Nome:           "Obra Civil",
			Descricao:      "Serviços de obra civil vinculados à instalação.",
			ModeloCobranca: CobrancaPainel,
			Ativo:          true,
		},
	}
}
