package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"

	"github.com/jhoicas/workforce-analytics-api/internal/application/auth"
	"github.com/jhoicas/workforce-analytics-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CompanyUC      *usecase.CompanyUseCase
	SubscriptionUC *usecase.SubscriptionService
	UserUC         *usecase.UserUseCase
	WorkforceUC    *usecase.WorkforceUseCase
	SnapshotUC     *usecase.SnapshotUseCase
	LoginLimiter   *limiter.Limiter
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	var revoked revocationChecker
	if deps.AuthUC != nil {
		revoked = deps.AuthUC
	}
	requireAuth := AuthMiddleware(deps.JWTSecret, revoked)
	superUser := RequireSuperUser()

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", RateLimit(deps.LoginLimiter), authHandler.Login)
	authGroup.Post("/reset-password", requireAuth, authHandler.ResetPassword)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)

	// Onboarding y planes (público)
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.SubscriptionUC)
	api.Get("/plans", companyHandler.ListPlans)
	api.Post("/companies/onboard", companyHandler.Onboard)

	// Empresa efectiva
	api.Get("/company", requireAuth, companyHandler.GetEffective)
	api.Put("/company", requireAuth, companyHandler.UpdateEffective)

	// Subempresas (el caso de uso exige superusuario de la empresa padre)
	// Sin middleware de grupo: el prefijo con :parentId también cubriría /companies/onboard.
	companies := api.Group("/companies/:parentId")
	companies.Get("/sub-companies", requireAuth, companyHandler.ListSubCompanies)
	companies.Post("/sub-companies", requireAuth, companyHandler.CreateSubCompany)
	companies.Get("/sub-companies/:subCompanyId", requireAuth, companyHandler.GetSubCompany)
	companies.Put("/sub-companies/:subCompanyId/super-users", requireAuth, companyHandler.AssignSuperUsers)
	companies.Get("/super-users", requireAuth, companyHandler.ListParentSuperUsers)
	companies.Get("/users/:userId/company-options", requireAuth, companyHandler.ListUserCompanyOptions)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users", requireAuth)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Post("/bulk", userHandler.BulkImport)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Post("/:id/activate", userHandler.Activate)
	users.Post("/:id/inactivate", userHandler.Inactivate)

	// Datasets y análisis del período
	wf := NewWorkforceHandler(deps.WorkforceUC)

	headcount := api.Group("/headcount", requireAuth)
	headcount.Get("/", wf.ListHeadcount)
	headcount.Post("/upload", superUser, wf.UploadHeadcount)
	headcount.Get("/analysis", wf.HeadcountAnalysis)
	headcount.Get("/finance", wf.FinanceHeadcount)

	nht := api.Group("/nht", requireAuth)
	nht.Get("/", wf.ListNHT)
	nht.Post("/upload", superUser, wf.UploadNHT)
	nht.Get("/analysis", wf.NHTAnalysis)
	nht.Get("/finance", wf.FinanceNHT)

	terms := api.Group("/terms", requireAuth)
	terms.Get("/", wf.ListTerms)
	terms.Post("/upload", superUser, wf.UploadTerms)
	terms.Get("/analysis", wf.TermsAnalysis)
	terms.Get("/finance", wf.FinanceTerms)

	employees := api.Group("/employees", requireAuth)
	employees.Get("/", wf.ListEmployees)
	employees.Post("/upload", superUser, wf.UploadEmployees)
	employees.Get("/analytics/gender-by-department", wf.GenderByDepartment)
	employees.Get("/analytics/gender-by-location", wf.GenderByLocation)
	employees.Get("/analytics/gender-by-manager", wf.GenderByManager)
	employees.Get("/analytics/average-tenure", wf.AverageTenure)
	employees.Get("/analytics/position-salary-gaps", wf.PositionSalaryGaps)
	employees.Get("/analytics/manager-salary-gaps", wf.ManagerSalaryGaps)

	// Snapshots; /ytd va antes de /:id
	snapshotHandler := NewSnapshotHandler(deps.SnapshotUC)
	snapshots := api.Group("/snapshots", requireAuth)
	snapshots.Get("/ytd", snapshotHandler.YTD)
	snapshots.Get("/ytd/pdf", snapshotHandler.YTDPDF)
	snapshots.Get("/", snapshotHandler.List)
	snapshots.Post("/", superUser, snapshotHandler.Save)
	snapshots.Get("/:id", snapshotHandler.GetByID)
}
