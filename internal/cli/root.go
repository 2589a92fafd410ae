// Package cli 实现 pdfscope 命令行：交互式查看器和打印模式
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pdfscope/internal/config"
	"pdfscope/internal/i18n"
	"pdfscope/internal/task"
	"pdfscope/internal/ui"
)

// options 命令行参数
type options struct {
	query     string
	logFile   string
	lang      string
	print     bool
	format    string
	statePath string
}

// NewRootCmd 创建根命令
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pdfscope [file.pdf]",
		Short: "PDF viewer with multi-term search",
		Long: `pdfscope opens a PDF document in the terminal and searches its text layer.

The query is a comma separated list of terms. Every term is matched
case-insensitively and gets its own highlight color. Use F3 / Shift+F3
(or n / N) to walk through matches in document order.

When stdout is not a terminal, or with --print, matches are written
as plain lines instead of starting the interactive viewer.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd, opts, path)
		},
	}

	addFlags(cmd.Flags(), opts)
	return cmd
}

func addFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVarP(&opts.query, "query", "q", "", "Search terms, separated by commas")
	fs.StringVar(&opts.logFile, "log-file", "", "Write debug log to this file (default $"+config.EnvLogFile+")")
	fs.StringVar(&opts.lang, "lang", "", "Interface language: en or zh (default from $LANG)")
	fs.BoolVar(&opts.print, "print", false, "Print matches instead of starting the viewer")
	fs.StringVar(&opts.format, "format", formatText, "Print mode output format: text or yaml")
	fs.StringVar(&opts.statePath, "state", "", "Path to preferences file (default $"+config.EnvState+")")
}

// Execute 执行根命令
func Execute() error {
	return NewRootCmd().Execute()
}

func run(cmd *cobra.Command, opts *options, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.statePath != "" {
		cfg.StatePath = opts.statePath
	}

	if opts.lang != "" {
		lang, ok := i18n.ParseLanguage(opts.lang)
		if !ok {
			return fmt.Errorf("unsupported language %q (want en or zh)", opts.lang)
		}
		i18n.SetLanguage(lang)
	} else {
		i18n.Init()
	}

	if opts.format != formatText && opts.format != formatYAML {
		return fmt.Errorf("unsupported format %q (want text or yaml)", opts.format)
	}

	interactive := !opts.print && isatty.IsTerminal(os.Stdout.Fd())
	if !interactive {
		if path == "" {
			return fmt.Errorf("a PDF file is required in print mode")
		}
		logger, closeLog, err := printLogger(cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()
		return printMatches(cmd.Context(), cmd.OutOrStdout(), logger, path, opts.query, opts.format)
	}

	return runViewer(cmd, cfg, path, opts.query)
}

func runViewer(cmd *cobra.Command, cfg *config.Config, path, query string) error {
	// TUI 占用终端，日志只能写文件
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "pdfscope")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	logger := log.Default()
	logFlags(logger, cmd.Flags())

	prefs, err := config.LoadPrefs(cfg.StatePath)
	if err != nil {
		// 偏好损坏不影响启动
		logger.Printf("load prefs: %v", err)
		prefs = nil
	}

	m := ui.NewModel(ui.Options{
		Config:  cfg,
		Prefs:   prefs,
		Path:    path,
		Query:   query,
		Logger:  logger,
		Manager: task.GetManager(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}
	return nil
}

// printLogger 打印模式的日志：写入日志文件，未配置时丢弃
// stdout 留给匹配结果，日志不能混进去。
func printLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.New(f, "pdfscope ", log.LstdFlags)
	return logger, func() { f.Close() }, nil
}

// logFlags 记录用户显式设置的参数
func logFlags(logger *log.Logger, fs *pflag.FlagSet) {
	fs.Visit(func(f *pflag.Flag) {
		logger.Printf("flag --%s=%s", f.Name, f.Value.String())
	})
}
