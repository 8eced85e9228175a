package http

import (
	"crypto/tls"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gitlab.apk-group.net/siem/backend/qualys-client/api/service"
	"gitlab.apk-group.net/siem/backend/qualys-client/app"
	"gitlab.apk-group.net/siem/backend/qualys-client/config"
)

// NewRouter builds the gateway with every route registered.
func NewRouter(appContainer app.AppContainer, cfg config.ServerConfig) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName: "APK Qualys Gateway",
	})
	router.Use(helmet.New())
	router.Use(TraceMiddleware())
	router.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} TraceID: ${locals:traceID}\n",
		Output: os.Stdout,
	}))

	router.Get("/", func(c *fiber.Ctx) error {
		c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		return c.SendString("Secure HTTPS server")
	})

	api := router.Group("/api/v1", setUserContext, newAuthMiddleware([]byte(cfg.Secret)))

	svcGetter := qualysServiceGetter(appContainer)
	registerHostAPI(svcGetter, api)
	registerScanAPI(svcGetter, api.Group("/scans"))
	registerReportAPI(svcGetter, api)

	return router
}

func Run(appContainer app.AppContainer, cfg config.ServerConfig) error {
	router := NewRouter(appContainer, cfg)

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		},
		PreferServerCipherSuites: true,
	}

	router.Server().TLSConfig = tlsConfig
	if !cfg.SslEnabled {
		return router.Listen(fmt.Sprintf(":%d", cfg.HttpPort))
	}
	return router.ListenTLS(fmt.Sprintf(":%d", cfg.HttpPort), cfg.Cert, cfg.Key)
}

func registerHostAPI(svcGetter ServiceGetter[*service.QualysService], router fiber.Router) {
	hosts := router.Group("/hosts")
	hosts.Get("/", GetHosts(svcGetter))
	hosts.Get("/stale", GetStaleHosts(svcGetter))

	groups := router.Group("/asset-groups")
	groups.Get("/", ListAssetGroups(svcGetter))
	groups.Get("/:id", GetAssetGroup(svcGetter))
	groups.Post("/:id/ips", UpdateAssetGroupIPs(svcGetter))

	router.Post("/ips", AddIPs(svcGetter))
}

func registerScanAPI(svcGetter ServiceGetter[*service.QualysService], router fiber.Router) {
	router.Get("/", ListScans(svcGetter))
	router.Get("/detail", GetScan(svcGetter))
	router.Post("/", LaunchScan(svcGetter))

	router.Post("/cancel", ControlScan(svcGetter, service.ScanActionCancel))
	router.Post("/pause", ControlScan(svcGetter, service.ScanActionPause))
	router.Post("/resume", ControlScan(svcGetter, service.ScanActionResume))
}

func registerReportAPI(svcGetter ServiceGetter[*service.QualysService], router fiber.Router) {
	router.Get("/report-templates", ListReportTemplates(svcGetter))

	reports := router.Group("/reports")
	reports.Get("/", ListReports(svcGetter))
	reports.Get("/:id", GetReport(svcGetter))
	reports.Get("/:id/download", DownloadReport(svcGetter))

	maps := router.Group("/map-reports")
	maps.Get("/", ListMapReports(svcGetter))
	maps.Post("/", LaunchMapReport(svcGetter))
}
