package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
	"sheetCalc/contracts"
	"time"
)

const DatabaseOpenTimeout = time.Second

type ServiceContainer struct {
	Database          *bbolt.DB
	ApiController     contracts.ApiController
	SheetRepository   contracts.SheetRepository
	Tokenizer         contracts.FormulaTokenizer
	WebhookDispatcher contracts.WebhookDispatcher
	Metrics           *EvaluationMetrics
	MetricsRegistry   *prometheus.Registry
	Router            *gin.Engine
}

func BuildServiceContainer(config *Config, logger *zap.Logger) (container ServiceContainer, err error) {
	container.Database, err = bbolt.Open(config.DatabaseFilepath, 0600, &bbolt.Options{Timeout: DatabaseOpenTimeout})
	if err != nil {
		return
	}

	serializer := NewCellBinarySerializer()
	canonicalizer := NewCanonicalizer()

	container.MetricsRegistry = prometheus.NewRegistry()
	container.Metrics = NewEvaluationMetrics(container.MetricsRegistry)

	container.Tokenizer = NewFormulaTokenizer(canonicalizer)
	container.WebhookDispatcher = NewWebhookDispatcher(config.WebhookWorkers, config.WebhookQueueSize, config.WebhookTimeout, logger)
	container.SheetRepository = NewSheetRepository(
		container.Database, container.Tokenizer, canonicalizer, serializer,
		NewFormulaEvaluatorFactory(), container.WebhookDispatcher, container.Metrics, logger,
	)
	container.ApiController = NewApiController(container.SheetRepository, container.WebhookDispatcher, canonicalizer)

	container.Router = SetupRouter(
		container.ApiController,
		promhttp.HandlerFor(container.MetricsRegistry, promhttp.HandlerOpts{}),
	)

	return
}
