package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openleaf/openleaf/config"
	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/reader"
	"github.com/openleaf/openleaf/server"
	"github.com/openleaf/openleaf/storage"
	"github.com/openleaf/openleaf/store"
	"github.com/openleaf/openleaf/store/db"
	"github.com/openleaf/openleaf/version"
	"github.com/openleaf/openleaf/worker"
)

const (
	greetingBanner = `
 ██████  ██████  ███████ ███    ██ ██      ███████  █████  ███████
██    ██ ██   ██ ██      ████   ██ ██      ██      ██   ██ ██
██    ██ ██████  █████   ██ ██  ██ ██      █████   ███████ █████
██    ██ ██      ██      ██  ██ ██ ██      ██      ██   ██ ██
 ██████  ██      ███████ ██   ████ ███████ ███████ ██   ██ ██
`
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:   "openleaf",
		Short: "Openleaf is a personal digital library server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			d, err := db.NewDB(config.Opts.DSN)
			if err != nil {
				log.Error("Error connecting to database", zap.Error(err))
				return
			}
			defer d.Close()
			if err := d.Migrate(ctx); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return
			}

			s := store.NewStore(d.DB)
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return
			}

			fileStorage := storage.NewLocalStorage(config.Opts.Data)
			analyzePool := worker.NewAnalyzePool(s, config.Opts.WorkerPoolSize)
			resumePendingJobs(s, analyzePool)

			if _, err := server.StartServer(ctx, s, fileStorage, analyzePool); err != nil {
				log.Error("Error starting server", zap.Error(err))
				return
			}

			fmt.Print(greetingBanner)
			fmt.Printf("Version %s has been started on port %d\n", version.GetCurrentVersion(), config.Opts.Port)

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			<-c
			log.Info("Server shutting down")
		},
	}

	readCmd = &cobra.Command{
		Use:   "read [file]",
		Short: "Read a PDF in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReader(cmd, args[0])
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the configuration file")

	readCmd.Flags().String("server", "", "Openleaf server URL to sync progress with")
	readCmd.Flags().String("token", "", "Access token for the server")
	readCmd.Flags().Int("book", 0, "Book ID on the server")
	readCmd.Flags().Int("page", 0, "Page to start at, overriding saved progress")
	readCmd.Flags().Duration("flip", 150*time.Millisecond, "Duration of a page flip, 0 flips instantly")

	rootCmd.AddCommand(readCmd)

	cobra.OnInitialize(func() {
		_, err := config.GetConfig()
		if err == nil && configFile != "" {
			_, err = config.ParseFile(configFile)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		log.Logger = log.NewLogger()
	})
}

// resumePendingJobs requeues analysis work that was interrupted by a
// previous shutdown.
func resumePendingJobs(s *store.Store, pool worker.WorkPool) {
	jobs, err := s.ListPendingJobs()
	if err != nil {
		log.Warn("Failed to list pending jobs", zap.Error(err))
		return
	}
	for _, job := range jobs {
		j := *job
		go pool.Push(j)
	}
}

func runReader(cmd *cobra.Command, path string) error {
	doc, err := reader.OpenPDF(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	var sink reader.ProgressSink
	startPage := 1

	serverURL, _ := cmd.Flags().GetString("server")
	bookID, _ := cmd.Flags().GetInt("book")
	if serverURL != "" && bookID > 0 {
		token, _ := cmd.Flags().GetString("token")
		client := reader.NewClient(serverURL, token)
		if progress, err := client.GetProgress(bookID); err != nil {
			log.Warn("Failed to fetch saved progress", zap.Error(err))
		} else {
			startPage = progress.CurrentPage
		}
		sink = reader.NewRemoteProgressSink(client, bookID)
	}

	if page, _ := cmd.Flags().GetInt("page"); page > 0 {
		startPage = page
	}

	var animator reader.Animator = reader.NopAnimator{}
	if flip, _ := cmd.Flags().GetDuration("flip"); flip > 0 {
		animator = &reader.SleepAnimator{Duration: flip}
	}

	session := reader.NewSession(doc, animator, sink, startPage)
	printSpread(session)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Commands: next, prev, goto <page>, quit")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "next", "n":
			session.NextPage()
			printSpread(session)
		case "prev", "p":
			session.PrevPage()
			printSpread(session)
		case "goto", "g":
			if len(fields) != 2 {
				fmt.Println("Usage: goto <page>")
				continue
			}
			page, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("Not a page number:", fields[1])
				continue
			}
			session.GoToPage(page)
			printSpread(session)
		case "quit", "q":
			return nil
		default:
			fmt.Println("Unknown command:", fields[0])
		}
	}
}

func printSpread(session *reader.Session) {
	spread := session.Spread()
	fmt.Printf("--- Page %d of %d ---\n", session.CurrentPage(), session.TotalPages())
	for _, page := range []*reader.Page{spread.Left, spread.Right} {
		if page == nil {
			continue
		}
		fmt.Printf("[%d]\n%s\n", page.Number, page.Text)
	}
}

func main() {
	defer log.Logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
