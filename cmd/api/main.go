package main

import (
	"context"
	"os"

	"solartrack/cmd/internal/domain/policy"
	"solartrack/cmd/internal/domain/sqlite"
	"solartrack/cmd/internal/domain/sqlite/repository"
	"solartrack/cmd/internal/http/handler"
	authmw "solartrack/cmd/internal/http/middleware"
	"solartrack/cmd/internal/service"
	"solartrack/cmd/internal/service/jobs"
	"solartrack/cmd/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/solartrack/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is not set")
	}

	// Init SQLite
	db, err := sqlite.Init()
	if err != nil {
		panic(err)
	}

	// Getting repos
	empresaRepo := repository.NewEmpresaRepository(db)
	equipeRepo := repository.NewEquipeRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	tipoServicoRepo := repository.NewTipoServicoRepository(db)
	lancamentoRepo := repository.NewLancamentoRepository(db)
	medicaoRepo := repository.NewMedicaoRepository(db)
	precoRepo := repository.NewPrecoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	roleConfigRepo := repository.NewRoleConfigRepository(db)
	historicoRepo := repository.NewHistoricoRepository(db)

	evaluator := policy.NewEvaluator(roleConfigRepo)

	// Getting services
	historicoService := service.NewHistoricoService(historicoRepo)
	precoService := service.NewPrecoService(empresaRepo, equipeRepo, tipoServicoRepo, precoRepo)
	empresaService := service.NewEmpresaService(empresaRepo, equipeRepo, precoService, historicoService, validate)
	equipeService := service.NewEquipeService(equipeRepo, empresaRepo, lancamentoRepo, historicoService, validate)
	clienteService := service.NewClienteService(clienteRepo, lancamentoRepo, historicoService, validate)
	tipoServicoService := service.NewTipoServicoService(tipoServicoRepo, historicoService, validate)
	lancamentoService := service.NewLancamentoService(
		lancamentoRepo, equipeRepo, empresaRepo, clienteRepo, tipoServicoRepo,
		precoService, historicoService, validate)
	medicaoService := service.NewMedicaoService(medicaoRepo, lancamentoRepo, historicoService, validate)
	precoConfigService := service.NewPrecoConfigService(precoRepo, historicoService, validate)
	usuarioService := service.NewUsuarioService(usuarioRepo, historicoService, validate, jwtSecret)
	roleService := service.NewRoleService(roleConfigRepo, evaluator, historicoService, validate)

	if err := usuarioService.BootstrapAdmin(); err != nil {
		log.Fatalf("failed to bootstrap administrator: %v", err)
	}

	// Getting handlers
	authRoutes := handler.NewAuthRoute(usuarioService)
	empresaRoutes := handler.NewEmpresaRoute(empresaService)
	equipeRoutes := handler.NewEquipeRoute(equipeService)
	clienteRoutes := handler.NewClienteRoute(clienteService)
	tipoServicoRoutes := handler.NewTipoServicoRoute(tipoServicoService)
	lancamentoRoutes := handler.NewLancamentoRoute(lancamentoService)
	medicaoRoutes := handler.NewMedicaoRoute(medicaoService)
	usuarioRoutes := handler.NewUsuarioRoute(usuarioService)
	precoRoutes := handler.NewPrecoRoute(precoConfigService)
	adminRoutes := handler.NewAdminRoute(roleService, historicoService, db)

	// Background jobs
	jobsCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	go jobs.NewHistoricoCleaner(historicoRepo).Start(jobsCtx)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("5M"))

	auth := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{
		UsuarioRepo: usuarioRepo,
		JWTSecret:   jwtSecret,
	})
	perm := func(id string) echo.MiddlewareFunc {
		return authmw.RequirePermission(evaluator, id)
	}

	// Auth
	e.POST("/api/auth/login", authRoutes.Login)
	e.GET("/api/auth/me", authRoutes.Me, auth)

	// Empresas
	e.GET("/api/empresas", empresaRoutes.GetEmpresas, auth, perm("empresas_view"))
	e.GET("/api/empresas/:id", empresaRoutes.GetEmpresa, auth, perm("empresas_view"))
	e.POST("/api/empresas", empresaRoutes.CreateEmpresa, auth, perm("empresas_create"))
	e.PUT("/api/empresas/:id", empresaRoutes.UpdateEmpresa, auth, perm("empresas_edit"))
	e.DELETE("/api/empresas/:id", empresaRoutes.DeleteEmpresa, auth, perm("empresas_delete"))
	e.POST("/api/empresas/:id/precos", empresaRoutes.DefinirPreco, auth, perm("precos_manage"))
	e.GET("/api/empresas/:id/precos", empresaRoutes.GetHistoricoPrecos, auth, perm("precos_view"))

	// Equipes
	e.GET("/api/equipes", equipeRoutes.GetEquipes, auth, perm("equipes_view"))
	e.POST("/api/equipes", equipeRoutes.CreateEquipe, auth, perm("equipes_manage"))
	e.PUT("/api/equipes/:id", equipeRoutes.UpdateEquipe, auth, perm("equipes_manage"))
	e.DELETE("/api/equipes/:id", equipeRoutes.DeleteEquipe, auth, perm("equipes_manage"))

	// Clientes
	e.GET("/api/clientes", clienteRoutes.GetClientes, auth, perm("clientes_view"))
	e.GET("/api/clientes/:id", clienteRoutes.GetCliente, auth, perm("clientes_view"))
	e.POST("/api/clientes", clienteRoutes.CreateCliente, auth, perm("clientes_create"))
	e.POST("/api/clientes/verificar", clienteRoutes.VerificarCliente, auth, perm("clientes_create"))
	e.GET("/api/clientes/:id/ultima-data-contrato", clienteRoutes.GetUltimaDataContrato, auth, perm("clientes_view"))
	e.PUT("/api/clientes/:id", clienteRoutes.UpdateCliente, auth, perm("clientes_edit"))
	e.DELETE("/api/clientes/:id", clienteRoutes.DeleteCliente, auth, perm("clientes_delete"))

	// Tipos de serviço
	e.GET("/api/tipos-servico", tipoServicoRoutes.GetTiposServico, auth, perm("tipos_servico_view"))
	e.PATCH("/api/tipos-servico/:id", tipoServicoRoutes.UpdateTipoServico, auth, perm("tipos_servico_manage"))

	// Lançamentos
	e.GET("/api/lancamentos", lancamentoRoutes.GetLancamentos, auth, perm("lancamentos_view"))
	e.POST("/api/lancamentos", lancamentoRoutes.CreateLancamento, auth, perm("lancamentos_create"))
	e.POST("/api/lancamentos/calcular", lancamentoRoutes.CalcularInstalacao, auth, perm("lancamentos_create"))
	e.PUT("/api/lancamentos/:id", lancamentoRoutes.UpdateLancamento, auth, perm("lancamentos_edit"))
	e.DELETE("/api/lancamentos/:id", lancamentoRoutes.DeleteLancamento, auth, perm("lancamentos_delete"))

	// Relatórios e medições
	e.POST("/api/relatorios", medicaoRoutes.GerarRelatorio, auth, perm("relatorios_view"))
	e.POST("/api/relatorios/exportar/:formato", medicaoRoutes.Exportar, auth, perm("relatorios_export"))
	e.GET("/api/medicoes", medicaoRoutes.GetMedicoes, auth, perm("medicoes_view"))
	e.POST("/api/medicoes", medicaoRoutes.SalvarMedicao, auth, perm("medicoes_create"))
	e.DELETE("/api/medicoes/:id", medicaoRoutes.DeleteMedicao, auth, perm("medicoes_view"))
	e.GET("/api/medicoes/:id/exportar/:formato", medicaoRoutes.ExportarMedicao, auth, perm("medicoes_export"))

	// Preços globais
	e.GET("/api/precos/config", precoRoutes.GetConfiguracoes, auth, perm("precos_view"))
	e.POST("/api/precos/config", precoRoutes.DefinirConfiguracao, auth, perm("precos_manage"))

	// Usuários
	e.GET("/api/usuarios", usuarioRoutes.GetUsuarios, auth, perm("usuarios_view"))
	e.POST("/api/usuarios", usuarioRoutes.CreateUsuario, auth, perm("usuarios_manage"))
	e.PATCH("/api/usuarios/:id", usuarioRoutes.UpdateUsuario, auth, perm("usuarios_manage"))

	// Administração
	e.GET("/api/roles/permissoes", adminRoutes.GetAllRolePermissions, auth, perm("permissoes_manage"))
	e.GET("/api/roles/:role/permissoes", adminRoutes.GetRolePermissions, auth, perm("permissoes_manage"))
	e.PUT("/api/roles/:role/permissoes", adminRoutes.UpdateRolePermissions, auth, perm("permissoes_manage"))
	e.GET("/api/historico", adminRoutes.GetHistorico, auth, perm("historico_view"))
	e.GET("/api/diagnostico/estrutura", adminRoutes.VerificarEstrutura, auth, perm("permissoes_manage"))

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":7070"); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("datadate", validators.DataDate)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
