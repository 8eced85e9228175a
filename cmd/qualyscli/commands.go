package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	jwt2 "github.com/golang-jwt/jwt/v5"
	"github.com/spf13/pflag"
	"gitlab.apk-group.net/siem/backend/qualys-client/config"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/encrypt"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
	qualysPort "gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/jwt"
	timeutils "gitlab.apk-group.net/siem/backend/qualys-client/pkg/time"
)

const dateLayout = "2006-01-02"

var errMissingFlag = errors.New("missing required flag")

type env struct {
	svc qualysPort.Service
	cfg config.Config
	out io.Writer
	in  io.Reader
}

type command struct {
	name        string
	usage       string
	needsConfig bool
	run         func(ctx context.Context, e *env, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{name: "hosts", usage: "show one host (--ip) or a range (--start --end)", needsConfig: true, run: runHosts},
		{name: "stale", usage: "hosts not scanned in --days days", needsConfig: true, run: runStale},
		{name: "groups", usage: "list asset groups, or show one with --id", needsConfig: true, run: runGroups},
		{name: "addips", usage: "add --ips to the subscription", needsConfig: true, run: runAddIPs},
		{name: "scans", usage: "list scans, or show one with --ref", needsConfig: true, run: runScans},
		{name: "launch", usage: "launch a scan", needsConfig: true, run: runLaunch},
		{name: "cancel", usage: "cancel the scan --ref", needsConfig: true, run: controlCommand("cancel")},
		{name: "pause", usage: "pause the scan --ref", needsConfig: true, run: controlCommand("pause")},
		{name: "resume", usage: "resume the scan --ref", needsConfig: true, run: controlCommand("resume")},
		{name: "reports", usage: "list reports, or show one with --id", needsConfig: true, run: runReports},
		{name: "download", usage: "download report --id to --out", needsConfig: true, run: runDownload},
		{name: "templates", usage: "list report templates", needsConfig: true, run: runTemplates},
		{name: "maps", usage: "list map reports", needsConfig: true, run: runMaps},
		{name: "mapreport", usage: "launch a report on the map --ref", needsConfig: true, run: runMapReport},
		{name: "kb", usage: "query the knowledge base", needsConfig: true, run: runKB},
		{name: "encrypt", usage: "encrypt a secret for the config file", run: runEncrypt},
		{name: "token", usage: "mint a gateway token for --user", needsConfig: true, run: runToken},
	}
}

func lookupCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func lastScan(h domain.Host) string {
	if h.NeverScanned() {
		return domain.NeverScanned
	}
	return humanize.Time(h.LastScan)
}

func printHosts(w io.Writer, hosts []domain.Host) error {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tIP\tDNS\tOS\tLAST SCAN")
	for _, h := range hosts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", h.ID, h.IP, h.DNS, h.OS, lastScan(h))
	}
	return tw.Flush()
}

func runHosts(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("hosts")
	ip := fs.String("ip", "", "host ip")
	start := fs.String("start", "", "first ip of the range")
	end := fs.String("end", "", "last ip of the range")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *ip != "" {
		host, err := e.svc.GetHost(ctx, *ip)
		if err != nil {
			return err
		}
		return printHosts(e.out, []domain.Host{host})
	}
	if *start == "" || *end == "" {
		return fmt.Errorf("%w: --ip or --start and --end", errMissingFlag)
	}
	hosts, err := e.svc.ListHostRange(ctx, *start, *end)
	if err != nil {
		return err
	}
	return printHosts(e.out, hosts)
}

func runStale(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("stale")
	days := fs.Int("days", 30, "days without a scan")
	if err := fs.Parse(args); err != nil {
		return err
	}

	hosts, err := e.svc.NotScannedSince(ctx, *days)
	if err != nil {
		return err
	}
	if err := printHosts(e.out, hosts); err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.out, "%s hosts not scanned in %d days\n", humanize.Comma(int64(len(hosts))), *days)
	return err
}

func runGroups(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("groups")
	title := fs.String("title", "", "exact group title")
	id := fs.Int64("id", 0, "group id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var groups []domain.AssetGroup
	if *id != 0 {
		group, err := e.svc.GetAssetGroup(ctx, *id)
		if err != nil {
			return err
		}
		groups = []domain.AssetGroup{group}
	} else {
		var err error
		if groups, err = e.svc.ListAssetGroups(ctx, *title); err != nil {
			return err
		}
	}

	tw := table(e.out)
	fmt.Fprintln(tw, "ID\tTITLE\tIPS\tAPPLIANCES")
	for _, g := range groups {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", g.ID, g.Title, strings.Join(g.ScanIPs, ","), strings.Join(g.ScannerAppliances, ","))
	}
	return tw.Flush()
}

func runAddIPs(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("addips")
	ips := fs.StringSlice("ips", nil, "addresses or ranges")
	module := fs.String("module", string(domain.ModuleVM), "vm, pc or both")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(*ips) == 0 {
		return fmt.Errorf("%w: --ips", errMissingFlag)
	}

	if err := e.svc.AddIPs(ctx, *ips, domain.IPModule(*module)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(e.out, "added %d entries\n", len(*ips))
	return err
}

func printScans(w io.Writer, scans []domain.Scan) error {
	tw := table(w)
	fmt.Fprintln(tw, "REF\tTITLE\tSTATUS\tLAUNCHED\tTARGET")
	for _, s := range scans {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Ref, s.Title, s.Status, domain.FormatDatetime(s.LaunchDatetime), strings.Join(s.Target, ","))
	}
	return tw.Flush()
}

func runScans(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("scans")
	ref := fs.String("ref", "", "scan reference")
	var filter domain.ScanFilter
	fs.StringVar(&filter.State, "state", "", "scan state")
	fs.StringVar(&filter.Type, "type", "", "scan type")
	fs.StringVar(&filter.Target, "target", "", "scan target")
	fs.StringVar(&filter.UserLogin, "user", "", "launching user")
	fs.StringVar(&filter.LaunchedAfter, "since", "", "launched after, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *ref != "" {
		scan, err := e.svc.GetScan(ctx, *ref)
		if err != nil {
			return err
		}
		return printScans(e.out, []domain.Scan{scan})
	}
	scans, err := e.svc.ListScans(ctx, filter)
	if err != nil {
		return err
	}
	return printScans(e.out, scans)
}

func runLaunch(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("launch")
	var req domain.LaunchScanRequest
	fs.StringVar(&req.Title, "title", "", "scan title")
	fs.StringVar(&req.OptionTitle, "option", "", "option profile title")
	fs.StringVar(&req.ScannerName, "scanner", "", "scanner appliance name")
	fs.StringVar(&req.AssetGroups, "groups", "", "comma separated asset group titles")
	fs.StringVar(&req.IP, "ip", "", "ips or ranges")
	if err := fs.Parse(args); err != nil {
		return err
	}

	scan, err := e.svc.LaunchScan(ctx, req)
	if err != nil {
		return err
	}
	return printScans(e.out, []domain.Scan{scan})
}

func controlCommand(action string) func(context.Context, *env, []string) error {
	return func(ctx context.Context, e *env, args []string) error {
		fs := newFlagSet(action)
		ref := fs.String("ref", "", "scan reference")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *ref == "" {
			return fmt.Errorf("%w: --ref", errMissingFlag)
		}

		var (
			scan domain.Scan
			err  error
		)
		switch action {
		case "cancel":
			scan, err = e.svc.CancelScan(ctx, *ref)
		case "pause":
			scan, err = e.svc.PauseScan(ctx, *ref)
		default:
			scan, err = e.svc.ResumeScan(ctx, *ref)
		}
		if err != nil {
			return err
		}
		return printScans(e.out, []domain.Scan{scan})
	}
}

func runReports(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("reports")
	id := fs.Int64("id", 0, "report id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var reports []domain.Report
	if *id != 0 {
		report, err := e.svc.GetReport(ctx, *id)
		if err != nil {
			return err
		}
		reports = []domain.Report{report}
	} else {
		var err error
		if reports, err = e.svc.ListReports(ctx); err != nil {
			return err
		}
	}

	tw := table(e.out)
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tSTATUS\tFORMAT\tSIZE")
	for _, r := range reports {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Type, r.Status, r.OutputFormat, r.Size)
	}
	return tw.Flush()
}

func runDownload(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("download")
	id := fs.Int64("id", 0, "report id")
	out := fs.String("out", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *out == "" {
		return fmt.Errorf("%w: --id and --out", errMissingFlag)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	n, err := e.svc.StreamReport(ctx, *id, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(*out)
		return err
	}
	_, err = fmt.Fprintf(e.out, "wrote %s to %s\n", humanize.Bytes(uint64(n)), *out)
	return err
}

func runTemplates(ctx context.Context, e *env, args []string) error {
	templates, err := e.svc.ListReportTemplates(ctx)
	if err != nil {
		return err
	}

	tw := table(e.out)
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tDEFAULT\tUPDATED")
	for _, t := range templates {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\n", t.ID, t.Title, t.TemplateType, t.IsDefault, humanize.Time(t.LastUpdate))
	}
	return tw.Flush()
}

func runMaps(ctx context.Context, e *env, args []string) error {
	maps, err := e.svc.ListMapReports(ctx)
	if err != nil {
		return err
	}

	tw := table(e.out)
	fmt.Fprintln(tw, "REF\tTITLE\tDOMAIN\tSTATUS\tLAUNCHED")
	for _, m := range maps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.Ref, m.Title, m.Domain, m.Status, domain.FormatDatetime(m.LaunchDatetime))
	}
	return tw.Flush()
}

func runMapReport(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("mapreport")
	ref := fs.String("ref", "", "map reference")
	name := fs.String("name", "", "map title used in the default report title")
	compare := fs.String("compare", "", "map reference to compare with")
	ips := fs.String("ips", "", "ip restriction")
	templateID := fs.Int64("template-id", 0, "report template id")
	var req domain.MapReportRequest
	fs.StringVar(&req.Domain, "domain", "", "map domain")
	fs.StringVar(&req.TemplateTitle, "template", "", "report template title")
	fs.BoolVar(&req.UseDefaultTemplate, "default-template", false, "use the default map template")
	fs.StringVar(&req.Title, "title", "", "report title")
	fs.StringVar(&req.OutputFormat, "format", domain.DefaultOutputFormat, "report output format")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ref == "" {
		return fmt.Errorf("%w: --ref", errMissingFlag)
	}

	req.Map = domain.MapHandle{Ref: *ref, Name: *name}
	if *compare != "" {
		req.CompareMap = domain.MapRef(*compare)
	}
	if *ips != "" {
		req.IPRestriction = domain.RawIPs(*ips)
	}
	req.TemplateID = *templateID

	id, err := e.svc.LaunchMapReport(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.out, "launched report %s\n", id)
	return err
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}

func runKB(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("kb")
	var query domain.KBQuery
	ids := fs.StringSlice("ids", nil, "QIDs")
	minID := fs.Int64("min", 0, "lowest QID")
	maxID := fs.Int64("max", 0, "highest QID")
	since := fs.String("since", "", "modified after, YYYY-MM-DD")
	before := fs.String("before", "", "modified before, YYYY-MM-DD")
	file := fs.String("file", "", "read a saved knowledge base export instead")
	fs.BoolVar(&query.All, "all", false, "every QID")
	fs.StringVar(&query.Details, "details", domain.DetailsAll, "All, Basic or None")
	fs.BoolVar(&query.OnlyPatchable, "patchable", false, "only patchable QIDs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, raw := range *ids {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid QID %q", raw)
		}
		query.IDs = append(query.IDs, id)
	}
	if *minID != 0 || *maxID != 0 {
		query.Range = &domain.QIDRange{Min: *minID, Max: *maxID}
	}
	var err error
	if query.ChangesSince, err = parseDate(*since); err != nil {
		return err
	}
	if query.ChangesBefore, err = parseDate(*before); err != nil {
		return err
	}
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		query.File = bufio.NewReader(f)
	}

	tw := table(e.out)
	fmt.Fprintln(tw, "QID\tSEVERITY\tTITLE\tCVE")
	count := 0
	err = e.svc.QueryKnowledgeBase(ctx, query, func(v domain.Vulnerability) error {
		count++
		_, err := fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", v.QID, v.Severity, v.Title, strings.Join(v.CVEs, ","))
		return err
	})
	if flushErr := tw.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.out, "%s vulnerabilities\n", humanize.Comma(int64(count)))
	return err
}

func runEncrypt(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("encrypt")
	value := fs.String("value", "", "secret to encrypt, read from stdin when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	passphrase := os.Getenv(config.SecretKeyEnv)
	if passphrase == "" {
		return fmt.Errorf("%s is not set", config.SecretKeyEnv)
	}

	secret := *value
	if secret == "" {
		in := e.in
		if in == nil {
			in = os.Stdin
		}
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		secret = strings.TrimRight(line, "\r\n")
	}
	if secret == "" {
		return fmt.Errorf("%w: --value", errMissingFlag)
	}

	encrypted, err := encrypt.EncryptSecret(secret, passphrase)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, encrypt.Prefix+encrypted)
	return err
}

func runToken(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("token")
	user := fs.String("user", "", "caller recorded on the gateway logs")
	minutes := fs.Uint("minutes", 60, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("%w: --user", errMissingFlag)
	}
	if e.cfg.Server.Secret == "" {
		return errors.New("server.secret is not configured")
	}

	token, err := jwt.CreateToken([]byte(e.cfg.Server.Secret), &jwt.UserClaims{
		RegisteredClaims: jwt2.RegisteredClaims{
			ExpiresAt: jwt2.NewNumericDate(timeutils.AddMinutes(*minutes)),
		},
		UserID: *user,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, token)
	return err
}
