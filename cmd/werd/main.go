// Command werd looks up Mushaf addresses, manages memorized verse ranges
// and serves a live selection session over HTTP and WebSocket.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/werd/core/errors"
	"github.com/FocuswithJustin/werd/core/layout"
	"github.com/FocuswithJustin/werd/core/progress"
	"github.com/FocuswithJustin/werd/core/quran"
	"github.com/FocuswithJustin/werd/core/selection"
	"github.com/FocuswithJustin/werd/core/verse"
	"github.com/FocuswithJustin/werd/internal/api"
	"github.com/FocuswithJustin/werd/internal/content"
	"github.com/FocuswithJustin/werd/internal/logging"
	"github.com/FocuswithJustin/werd/internal/store"
	"github.com/FocuswithJustin/werd/internal/validation"
)

const version = "0.1.0"

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

// Globals are the flags shared by every command.
type Globals struct {
	DB        string `name:"db" help:"SQLite database path" default:"werd.db" env:"WERD_DB" type:"path"`
	Profile   string `help:"Range profile to read and write" default:"default" env:"WERD_PROFILE"`
	LogLevel  string `name:"log-level" help:"Log level" enum:"debug,info,warn,error" default:"info" env:"WERD_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format" enum:"json,text" default:"text" env:"WERD_LOG_FORMAT"`
}

// CLI defines the command-line interface for werd.
type CLI struct {
	Globals

	Serve    ServeCmd    `cmd:"" help:"Start the selection API server"`
	Surah    SurahCmd    `cmd:"" help:"Show a surah or search surah names"`
	Page     PageCmd     `cmd:"" help:"Show the verses printed on a page"`
	Juz      JuzCmd      `cmd:"" help:"Show the verses of a juz"`
	Verse    VerseCmd    `cmd:"" help:"Show where a verse is printed"`
	Expand   ExpandCmd   `cmd:"" help:"Expand a range expression into verse keys"`
	Ranges   RangesGroup `cmd:"" help:"Memorized range operations"`
	Profiles ProfilesCmd `cmd:"" help:"List stored profiles"`
	Progress ProgressCmd `cmd:"" help:"Show memorization progress"`
	Export   ExportCmd   `cmd:"" help:"Write an xz-compressed backup of a profile"`
	Import   ImportCmd   `cmd:"" help:"Restore a profile from a backup"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// RangesGroup contains memorized range operations.
type RangesGroup struct {
	List   RangesListCmd   `cmd:"" help:"List memorized ranges"`
	Add    RangesAddCmd    `cmd:"" help:"Add a range such as 2:5-10 or 2:285-3:2"`
	Remove RangesRemoveCmd `cmd:"" help:"Remove a range by id"`
	Clear  RangesClearCmd  `cmd:"" help:"Remove every range of the profile"`
}

func (g *Globals) initLogging() error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

func (g *Globals) openStore(ctx context.Context) (*store.Store, error) {
	if err := validation.ValidateProfile(g.Profile); err != nil {
		return nil, err
	}
	return store.Open(ctx, g.DB)
}

// ServeCmd starts the API server.
type ServeCmd struct {
	Port       int           `help:"HTTP server port" default:"8080" env:"WERD_PORT"`
	Content    string        `help:"Directory of page-NNN.json or page-NNN.xml files" type:"path" env:"WERD_CONTENT"`
	CacheTTL   time.Duration `name:"cache-ttl" help:"How long loaded pages are cached" default:"30m"`
	CachePages int           `name:"cache-pages" help:"Maximum cached pages" default:"64"`
	Origins    []string      `help:"Allowed CORS and WebSocket origins (default: any)" env:"WERD_ORIGINS"`
	APIKey     string        `name:"api-key" help:"Require this X-API-Key on API requests" env:"WERD_API_KEY"`
	TLSCert    string        `name:"tls-cert" help:"TLS certificate file" type:"path"`
	TLSKey     string        `name:"tls-key" help:"TLS private key file" type:"path"`
	RateLimit  int           `name:"rate-limit" help:"Selection writes per minute per client (0 disables)" default:"0"`
}

func (c *ServeCmd) config(g *Globals) api.Config {
	return api.Config{
		Port:           c.Port,
		Profile:        g.Profile,
		AllowedOrigins: c.Origins,
		Auth:           api.AuthConfig{Enabled: c.APIKey != "", APIKey: c.APIKey},
		TLS: api.TLSConfig{
			Enabled:  c.TLSCert != "" || c.TLSKey != "",
			CertFile: c.TLSCert,
			KeyFile:  c.TLSKey,
		},
		RateLimit: api.RateLimitConfig{RequestsPerMinute: c.RateLimit},
	}
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg := c.config(g)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := []api.Option{api.WithStore(st)}
	if c.Content != "" {
		dir, err := content.NewDirProvider(c.Content)
		if err != nil {
			return err
		}
		opts = append(opts, api.WithContent(content.NewCachedProvider(dir, c.CacheTTL, c.CachePages)))
	}

	srv := api.New(cfg, selection.New(), opts...)
	defer srv.Close()
	if err := srv.Load(ctx); err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

// SurahCmd shows one surah by number or lists the surahs matching a name.
type SurahCmd struct {
	Query string `arg:"" help:"Surah number or name (e.g. 18, kahf, the cave)"`
}

func (c *SurahCmd) Run() error {
	if id, err := strconv.Atoi(c.Query); err == nil {
		meta, err := quran.Surah(id)
		if err != nil {
			return err
		}
		pages, err := quran.SurahPages(id)
		if err != nil {
			return err
		}
		printSurah(meta)
		fmt.Fprintf(stdout, "  pages: %d-%d\n", pages[0], pages[len(pages)-1])
		fmt.Fprintf(stdout, "  %s\n", quran.SurahURL(id))
		return nil
	}

	found := quran.FindSurahs(c.Query)
	if len(found) == 0 {
		return errors.NewNotFound("surah", c.Query)
	}
	for _, meta := range found {
		printSurah(meta)
	}
	return nil
}

func printSurah(m quran.SurahMeta) {
	fmt.Fprintf(stdout, "%3d  %-24s %s  %d verses  %s\n", m.ID, m.Name, m.ArabicName, m.VersesCount, m.RevelationPlace)
}

// PageCmd shows the segments of a page and, with --content, its lines.
type PageCmd struct {
	Page    string `arg:"" help:"Page number (1-604)"`
	Content string `help:"Directory of page files for line output" type:"path" env:"WERD_CONTENT"`
}

func (c *PageCmd) Run() error {
	page, err := validation.ParseBounded("page", c.Page, 1, quran.TotalPages)
	if err != nil {
		return err
	}
	segments, err := quran.PageSegments(page)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Page %d (font %s)\n", page, quran.PageFontName(page))
	for _, seg := range segments {
		meta, err := quran.Surah(seg.SurahID)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  %s %d:%d-%d (%d verses)\n", meta.Name, seg.SurahID, seg.StartVerse, seg.EndVerse, seg.Len())
	}

	if c.Content == "" {
		return nil
	}
	provider, err := content.NewDirProvider(c.Content)
	if err != nil {
		return err
	}
	verses, err := provider.Page(context.Background(), page)
	if err != nil {
		return err
	}
	for _, line := range layout.GroupLines(verses) {
		fmt.Fprintf(stdout, "%3d  %s\n", line.LineNumber, layout.VerseText(line.Words))
	}
	return nil
}

// JuzCmd shows the verse intervals of a juz.
type JuzCmd struct {
	Juz string `arg:"" help:"Juz number (1-30)"`
}

func (c *JuzCmd) Run() error {
	juz, err := validation.ParseBounded("juz", c.Juz, 1, quran.TotalJuz)
	if err != nil {
		return err
	}
	intervals, err := quran.JuzVerseIntervals(juz)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Juz %d  %s\n", juz, quran.JuzURL(juz))
	for id := 1; id <= quran.TotalSurahs; id++ {
		iv, ok := intervals[id]
		if !ok {
			continue
		}
		meta, err := quran.Surah(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  %s %d:%d-%d\n", meta.Name, id, iv.Start, iv.End)
	}
	return nil
}

// VerseCmd shows the page, juz and link of a verse.
type VerseCmd struct {
	Key string `arg:"" help:"Verse key (surah:verse)"`
}

func (c *VerseCmd) Run() error {
	k, err := parseValidKey(c.Key)
	if err != nil {
		return err
	}
	page, err := quran.PageNumber(k.Surah, k.Verse)
	if err != nil {
		return err
	}
	meta, err := quran.Surah(k.Surah)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s %s %s\n", k, meta.Name, quran.VerseEndSymbol(k.Verse, true))
	fmt.Fprintf(stdout, "  page: %d\n  juz:  %d\n", page, quran.JuzNumber(k.Surah, k.Verse))
	if quran.IsSajdahVerse(k.Surah, k.Verse) {
		fmt.Fprintf(stdout, "  %s\n", quran.Sajdah)
	}
	fmt.Fprintf(stdout, "  %s\n", quran.VerseURL(k.Surah, k.Verse))
	return nil
}

// ExpandCmd lists every verse of a range expression.
type ExpandCmd struct {
	Expr string `arg:"" help:"Range expression (2:5, 2:5-10, 2:285-3:2)"`
}

func (c *ExpandCmd) Run() error {
	start, end, err := parseValidRange(c.Expr)
	if err != nil {
		return err
	}
	keys, err := verse.VersesInRange(start, end)
	if err != nil {
		return err
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	fmt.Fprintln(stdout, strings.Join(parts, " "))
	return nil
}

// RangesListCmd lists the ranges of the profile.
type RangesListCmd struct {
	Surah int `help:"Only ranges of this surah"`
}

func (c *RangesListCmd) Run(g *Globals) error {
	ctx := context.Background()
	st, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	var ranges []verse.Range
	if c.Surah != 0 {
		ranges, err = st.LoadSurah(ctx, g.Profile, c.Surah)
	} else {
		ranges, err = st.LoadRanges(ctx, g.Profile)
	}
	if err != nil {
		return err
	}
	printRanges(ranges)
	return nil
}

func printRanges(ranges []verse.Range) {
	if len(ranges) == 0 {
		fmt.Fprintln(stdout, "No ranges")
		return
	}
	for _, r := range ranges {
		fmt.Fprintf(stdout, "%-14s %-12s %d verses\n", r.ID, r.String(), r.VerseCount())
	}
}

// editRanges loads the profile into a Selection, applies edit and saves
// the result.
func editRanges(g *Globals, edit func(*selection.Selection) error) error {
	ctx := context.Background()
	st, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	ranges, err := st.LoadRanges(ctx, g.Profile)
	if err != nil {
		return err
	}
	sel := selection.New()
	sel.Restore(ranges)
	if err := edit(sel); err != nil {
		return err
	}
	if _, err := st.SaveRanges(ctx, g.Profile, sel.Ranges()); err != nil {
		return err
	}
	printRanges(sel.Ranges())
	return nil
}

// RangesAddCmd adds a range to the profile.
type RangesAddCmd struct {
	Expr string `arg:"" help:"Range expression (2:5, 2:5-10, 2:285-3:2)"`
}

func (c *RangesAddCmd) Run(g *Globals) error {
	start, end, err := parseValidRange(c.Expr)
	if err != nil {
		return err
	}
	return editRanges(g, func(sel *selection.Selection) error {
		sel.AddVerseRange(start, end)
		return nil
	})
}

// RangesRemoveCmd removes a range by id.
type RangesRemoveCmd struct {
	ID string `arg:"" help:"Range id (see ranges list)"`
}

func (c *RangesRemoveCmd) Run(g *Globals) error {
	return editRanges(g, func(sel *selection.Selection) error {
		if !sel.RemoveRangeIfPresent(c.ID) {
			return errors.NewNotFound("range", c.ID)
		}
		return nil
	})
}

// RangesClearCmd removes every range of the profile.
type RangesClearCmd struct{}

func (c *RangesClearCmd) Run(g *Globals) error {
	return editRanges(g, func(sel *selection.Selection) error {
		sel.ClearRanges()
		return nil
	})
}

// ProfilesCmd lists stored profiles.
type ProfilesCmd struct {
	Delete string `help:"Delete this profile and its ranges"`
}

func (c *ProfilesCmd) Run(g *Globals) error {
	ctx := context.Background()
	st, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if c.Delete != "" {
		if err := st.DeleteProfile(ctx, c.Delete); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted profile %s\n", c.Delete)
		return nil
	}

	profiles, err := st.Profiles(ctx)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		fp, err := st.Fingerprint(ctx, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%-20s %.12s\n", p, fp)
	}
	return nil
}

// ProgressCmd prints the memorization summary of the profile.
type ProgressCmd struct{}

func (c *ProgressCmd) Run(g *Globals) error {
	ctx := context.Background()
	st, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	ranges, err := st.LoadRanges(ctx, g.Profile)
	if err != nil {
		return err
	}
	sum, err := progress.Summarize(ranges, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%d%% memorized (%d of %d verses)\n", sum.OverallProgress, sum.TotalMemorizedVerses, sum.TotalVerses)
	fmt.Fprintf(stdout, "%d surahs complete, %d in progress\n", sum.CompletedSurahs, sum.InProgressSurahs)
	for _, sp := range sum.Surahs {
		mark := " "
		if sp.Complete() {
			mark = "*"
		}
		fmt.Fprintf(stdout, "%s %3d %-24s %d/%d\n", mark, sp.Number, sp.NameEnglish, sp.MemorizedVerses, sp.TotalVerses)
	}
	return nil
}

// ExportCmd writes a backup of the profile.
type ExportCmd struct {
	Output string `short:"o" help:"Backup file (default: stdout)" type:"path"`
}

func (c *ExportCmd) Run(g *Globals) error {
	ctx := context.Background()
	st, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	w := stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return errors.NewIO("create", c.Output, err)
		}
		defer f.Close()
		w = f
	}
	b, err := st.Export(ctx, w, g.Profile)
	if err != nil {
		return err
	}
	logging.Info("backup written", "profile", b.Profile, "ranges", len(b.Ranges), "fingerprint", b.Fingerprint)
	return nil
}

// ImportCmd restores a backup.
type ImportCmd struct {
	Path string `arg:"" help:"Backup file" type:"existingfile"`
	Into string `help:"Profile to restore into (default: the backup's profile)"`
}

func (c *ImportCmd) Run(g *Globals) error {
	ctx := context.Background()
	st, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	f, err := os.Open(c.Path)
	if err != nil {
		return errors.NewIO("open", c.Path, err)
	}
	defer f.Close()

	b, err := st.Import(ctx, f, c.Into)
	if err != nil {
		return err
	}
	profile := b.Profile
	if c.Into != "" {
		profile = c.Into
	}
	fmt.Fprintf(stdout, "Imported %d ranges into %s\n", len(b.Ranges), profile)
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(stdout, "werd version %s (store driver %s)\n", version, store.DriverInfo().DriverType)
	return nil
}

// Helper functions

func parseValidKey(s string) (verse.Key, error) {
	k, err := verse.ParseKey(s)
	if err != nil {
		return verse.Key{}, err
	}
	return k, k.Validate()
}

func parseValidRange(s string) (verse.Key, verse.Key, error) {
	start, end, err := verse.ParseRangeExpr(s)
	if err != nil {
		return start, end, err
	}
	if err := start.Validate(); err != nil {
		return start, end, err
	}
	return start, end, end.Validate()
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("werd"),
		kong.Description("werd - Mushaf addressing and memorized verse ranges"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	ctx.FatalIfErrorf(cli.Globals.initLogging())
	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
