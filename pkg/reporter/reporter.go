package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"

	"linkscan/internal/models"
)

// Reporter renders scan results: one colored console line per visited link
// while the scan runs, a summary when it finishes, and a timestamped CSV on
// request. It implements scanner.Progress.
type Reporter struct {
	w      io.Writer
	green  *color.Color
	yellow *color.Color
	red    *color.Color
}

// New creates a Reporter writing console output to w. With colored false all
// output is plain text, which also keeps it stable for piping and tests.
func New(w io.Writer, colored bool) *Reporter {
	r := &Reporter{
		w:      w,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
	}
	if !colored {
		for _, c := range []*color.Color{r.green, r.yellow, r.red} {
			c.DisableColor()
		}
	}
	return r
}

// PageScanned prints the scan header once the seed page is classified.
func (r *Reporter) PageScanned(res *models.ScanResult, internal []string) {
	title := res.Title
	if title == "" {
		title = "(no title)"
	}
	fmt.Fprintf(r.w, "Scanning %s (%s)\n", res.Seed, title)
	fmt.Fprintf(r.w, "Host %s: %d internal links, %d anchors skipped\n\n", res.Host, len(internal), res.Rejected)
}

// LinkVisited prints one result line: URL, response time in seconds and the
// status, colored green for 2xx, yellow for 3xx/4xx, red for 5xx and for
// probes that failed outright.
func (r *Reporter) LinkVisited(v models.LinkVisit) {
	if v.Err != "" {
		fmt.Fprintf(r.w, "%-60s %8s  %s\n", v.URL, "-", r.red.Sprintf("ERR %s", v.Err))
		return
	}
	status := r.statusColor(v.StatusCode).Sprintf("%d", v.StatusCode)
	fmt.Fprintf(r.w, "%-60s %7.3fs  %s\n", v.URL, v.Elapsed.Seconds(), status)
}

// PrintSummary prints the closing line after all links were probed.
func (r *Reporter) PrintSummary(res *models.ScanResult) {
	fmt.Fprintf(r.w, "\nVisited %d internal links on %s\n", len(res.Visits), res.Host)
}

func (r *Reporter) statusColor(status int) *color.Color {
	switch {
	case status >= 200 && status < 300:
		return r.green
	case status >= 500 || status == 0:
		return r.red
	default:
		return r.yellow
	}
}

// WriteCSV writes one row per visited link to a timestamped CSV in dir and
// returns the path. The filename carries the scan's start time, so repeated
// runs never clobber each other.
func (r *Reporter) WriteCSV(dir string, res *models.ScanResult) (string, error) {
	name := fmt.Sprintf("links_%s.csv", res.ScannedAt.Format("20060102-150405"))
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"url", "status_code", "response_time_ms", "error"}); err != nil {
		return "", fmt.Errorf("write CSV header: %w", err)
	}
	for _, v := range res.Visits {
		row := []string{
			v.URL,
			strconv.Itoa(v.StatusCode),
			strconv.FormatInt(v.Elapsed.Milliseconds(), 10),
			v.Err,
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush CSV: %w", err)
	}
	return path, nil
}
