package routes

import (
	_ "fieldops/docs" // generated by swag init
	"fieldops/internal/adapter/http/handlers"
	"fieldops/internal/adapter/persistence/repository"
	"fieldops/internal/adapter/realtime"
	"fieldops/internal/infrastructure/database"
	"fieldops/internal/infrastructure/payments"
	"fieldops/internal/usecase"
	"fieldops/internal/usecase/interfaces"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + port())
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// Handlers groups everything the route table needs.
type Handlers struct {
	Team           *handlers.TeamHandler
	WorkOrder      *handlers.WorkOrderHandler
	PaymentReceipt *handlers.PaymentReceiptHandler
	Upload         *handlers.UploadHandler
	JobStream      *handlers.JobStreamHandler
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	teamRepo := repository.NewTeamDynamoRepository(ddb)
	jobRepo := repository.NewWorkOrderDynamoRepository(ddb)
	txRepo := repository.NewCashTransactionDynamoRepository(ddb)
	fileRepo := repository.NewReceiptFileDynamoRepository(ddb)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured, receipts accepted as declared: %v", err)
	} else {
		log.Printf("payment gateway ready: %s", mpGateway)
		paymentGateway = mpGateway
	}

	hub := realtime.NewHub()

	teamUseCase := usecase.NewTeamUseCase(teamRepo, jobRepo)
	workOrderUseCase := usecase.NewWorkOrderUseCase(jobRepo, teamUseCase, hub)
	receiptUseCase := usecase.NewPaymentReceiptUseCase(txRepo, jobRepo, fileRepo, teamUseCase, paymentGateway, hub)
	uploadUseCase := usecase.NewReceiptUploadUseCase(fileRepo, teamUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	Register(v1, Handlers{
		Team:           handlers.NewTeamHandler(teamUseCase),
		WorkOrder:      handlers.NewWorkOrderHandler(workOrderUseCase),
		PaymentReceipt: handlers.NewPaymentReceiptHandler(receiptUseCase),
		Upload:         handlers.NewUploadHandler(uploadUseCase),
		JobStream:      handlers.NewJobStreamHandler(teamUseCase, jobRepo, hub),
	})
}

// Register mounts every field-operations route on rg.
func Register(rg *gin.RouterGroup, h Handlers) {
	addPingRoutes(rg)
	addAuthRoutes(rg, h.Team)
	addJobRoutes(rg, h.WorkOrder, h.PaymentReceipt)
	addUploadRoutes(rg, h.Upload)
	addTeamRoutes(rg, h.Team, h.JobStream)
}

func setMiddlewares() {
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func port() string {
	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			return v
		}
		log.Printf("invalid PORT=%q, using %d", v, PORT)
	}
	return strconv.Itoa(PORT)
}
