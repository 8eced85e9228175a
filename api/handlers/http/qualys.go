package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gitlab.apk-group.net/siem/backend/qualys-client/api/service"
)

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", c.Params("id"))
	}
	return id, nil
}

func GetHosts(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())
		hosts, err := srv.Hosts(c.UserContext(), c.Query("ip"), c.Query("start"), c.Query("end"))
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, hosts)
	}
}

func GetStaleHosts(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days, err := strconv.Atoi(c.Query("days"))
		if err != nil {
			return badRequest(c, "days must be an integer")
		}

		srv := svcGetter(c.UserContext())
		hosts, err := srv.StaleHosts(c.UserContext(), days)
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, hosts)
	}
}

func ListAssetGroups(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())
		groups, err := srv.AssetGroups(c.UserContext(), c.Query("title"))
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, groups)
	}
}

func GetAssetGroup(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return badRequest(c, err.Error())
		}

		srv := svcGetter(c.UserContext())
		group, err := srv.AssetGroup(c.UserContext(), id)
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, group)
	}
}

func UpdateAssetGroupIPs(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return badRequest(c, err.Error())
		}
		var req service.AssetGroupIPsRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Failed to parse request body")
		}

		srv := svcGetter(c.UserContext())
		group, err := srv.UpdateAssetGroupIPs(c.UserContext(), id, &req)
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, group)
	}
}

func ListScans(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.ScanFilterRequest
		if err := c.QueryParser(&req); err != nil {
			return badRequest(c, "Failed to parse query")
		}

		srv := svcGetter(c.UserContext())
		scans, err := srv.Scans(c.UserContext(), &req)
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, scans)
	}
}

func GetScan(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())
		scan, err := srv.Scan(c.UserContext(), c.Query("ref"))
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, scan)
	}
}

func LaunchScan(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.LaunchScanRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Failed to parse request body")
		}

		srv := svcGetter(c.UserContext())
		scan, err := srv.LaunchScan(c.UserContext(), &req)
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusCreated, scan)
	}
}

// ControlScan serves cancel, pause and resume.
func ControlScan(svcGetter ServiceGetter[*service.QualysService], action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())
		scan, err := srv.ControlScan(c.UserContext(), action, c.Query("ref"))
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, scan)
	}
}

func ListReportTemplates(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())
		templates, err := srv.ReportTemplates(c.UserContext())
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, templates)
	}
}

func ListReports(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())
		reports, err := srv.Reports(c.UserContext())
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, reports)
	}
}

func GetReport(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return badRequest(c, err.Error())
		}

		srv := svcGetter(c.UserContext())
		report, err := srv.Report(c.UserContext(), id)
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, report)
	}
}

func DownloadReport(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return badRequest(c, err.Error())
		}

		srv := svcGetter(c.UserContext())
		body, err := srv.DownloadReport(c.UserContext(), id)
		if err != nil {
			return handleError(c, err)
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=\"report-%d\"", id))
		return c.Status(fiber.StatusOK).Send(body)
	}
}

func ListMapReports(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())
		maps, err := srv.MapReports(c.UserContext())
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, maps)
	}
}

func LaunchMapReport(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.MapReportRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Failed to parse request body")
		}

		srv := svcGetter(c.UserContext())
		launched, err := srv.LaunchMapReport(c.UserContext(), &req)
		if err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusCreated, launched)
	}
}

func AddIPs(svcGetter ServiceGetter[*service.QualysService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.AddIPsRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Failed to parse request body")
		}

		srv := svcGetter(c.UserContext())
		if err := srv.AddIPs(c.UserContext(), &req); err != nil {
			return handleError(c, err)
		}
		return success(c, fiber.StatusOK, nil)
	}
}
