package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	couponrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/coupon"
	visitrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/visit"
	adminsvc "github.com/iseungsang01/tarot-manager-app/internal/service/admin"
	birthdaysvc "github.com/iseungsang01/tarot-manager-app/internal/service/birthday"
	customersvc "github.com/iseungsang01/tarot-manager-app/internal/service/customer"
	noticesvc "github.com/iseungsang01/tarot-manager-app/internal/service/notice"
	stampsvc "github.com/iseungsang01/tarot-manager-app/internal/service/stamp"
	suggestionsvc "github.com/iseungsang01/tarot-manager-app/internal/service/suggestion"
	votesvc "github.com/iseungsang01/tarot-manager-app/internal/service/vote"
)

// Deps bundles the services the router hands to its handlers.
type Deps struct {
	CustomerSvc   *customersvc.Service
	StampSvc      *stampsvc.Service
	BirthdaySvc   *birthdaysvc.Service
	NoticeSvc     *noticesvc.Service
	VoteSvc       *votesvc.Service
	SuggestionSvc *suggestionsvc.Service
	AdminSvc      *adminsvc.Service
	CouponRepo    couponrepo.Repository
	VisitRepo     visitrepo.Repository
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.POST("/customers/lookup", lookupCustomerHandler(deps.CustomerSvc))
		api.GET("/customers/:id", getCustomerHandler(deps.CustomerSvc))
		api.POST("/customers/:id/stamps", addStampsHandler(deps.StampSvc))
		api.POST("/customers/:id/coupons", issueCouponHandler(deps.StampSvc))
		api.GET("/customers/:id/coupons", listCustomerCouponsHandler(deps.CouponRepo))
		api.GET("/customers/:id/visits", listVisitsHandler(deps.VisitRepo))

		api.GET("/notices", listPublicNoticesHandler(deps.NoticeSvc))

		api.GET("/votes", listActiveVotesHandler(deps.VoteSvc))
		api.POST("/votes/:id/ballots", castBallotHandler(deps.VoteSvc))

		api.POST("/suggestions", submitSuggestionHandler(deps.SuggestionSvc))
	}

	admin := router.Group("/admin")
	admin.POST("/login", adminLoginHandler(deps.AdminSvc))

	secured := admin.Group("")
	secured.Use(adminAuth(deps.AdminSvc))
	{
		secured.GET("/customers", listCustomersHandler(deps.CustomerSvc))
		secured.DELETE("/customers", resetCustomersHandler(deps.CustomerSvc))
		secured.DELETE("/customers/:id", deleteCustomerHandler(deps.CustomerSvc))
		secured.PUT("/customers/:id/stamps", correctStampsHandler(deps.StampSvc))
		secured.POST("/customers/:id/birthday-coupon", grantBirthdayCouponHandler(deps.BirthdaySvc))

		secured.GET("/birthdays", listBirthdaysHandler(deps.BirthdaySvc))

		secured.GET("/coupons", listCouponsHandler(deps.CouponRepo))
		secured.PUT("/coupons/:id/used", setCouponUsedHandler(deps.CouponRepo))
		secured.DELETE("/coupons/expired", deleteExpiredCouponsHandler(deps.CouponRepo))
		secured.DELETE("/coupons/:id", deleteCouponHandler(deps.CouponRepo))

		secured.GET("/notices", listAllNoticesHandler(deps.NoticeSvc))
		secured.POST("/notices", createNoticeHandler(deps.NoticeSvc))
		secured.PUT("/notices/:id", updateNoticeHandler(deps.NoticeSvc))
		secured.DELETE("/notices/:id", deleteNoticeHandler(deps.NoticeSvc))

		secured.GET("/votes", listAllVotesHandler(deps.VoteSvc))
		secured.POST("/votes", createVoteHandler(deps.VoteSvc))
		secured.PUT("/votes/:id", updateVoteHandler(deps.VoteSvc))
		secured.PUT("/votes/:id/active", setVoteActiveHandler(deps.VoteSvc))
		secured.GET("/votes/:id/results", voteResultsHandler(deps.VoteSvc))
		secured.DELETE("/votes/:id", deleteVoteHandler(deps.VoteSvc))

		secured.GET("/suggestions", listSuggestionsHandler(deps.SuggestionSvc))
		secured.PUT("/suggestions/:id/response", respondSuggestionHandler(deps.SuggestionSvc))
		secured.DELETE("/suggestions/:id", deleteSuggestionHandler(deps.SuggestionSvc))
	}

	return router
}
