package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/eventum/eventum/config"
	"github.com/eventum/eventum/database"
	"github.com/eventum/eventum/database/model"
	"github.com/eventum/eventum/logger"
	"github.com/eventum/eventum/util/coverage"
	"github.com/eventum/eventum/web"
	"github.com/eventum/eventum/web/service"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func initLogger(withFile bool) {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG, withFile)
	case config.Info:
		logger.InitLogger(logging.INFO, withFile)
	case config.Notice:
		logger.InitLogger(logging.NOTICE, withFile)
	case config.Warn:
		logger.InitLogger(logging.WARNING, withFile)
	case config.Error:
		logger.InitLogger(logging.ERROR, withFile)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

func loadAppConfig(configFile string) *config.AppConfig {
	cfg := config.NewAppConfig()
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			log.Fatal(err)
		}
	}
	return cfg
}

func runWebServer(configFile string) {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger(true)
	defer logger.CloseLogger()

	cfg := loadAppConfig(configFile)
	server, err := web.NewServer(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err = server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server, err = web.NewServer(loadAppConfig(configFile))
			if err != nil {
				log.Println(err)
				return
			}
			if err = server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func runCoverage(cmd *cobra.Command, packages []string) {
	initLogger(false)
	reportDir, _ := cmd.Flags().GetString("report-dir")
	jsonPath, _ := cmd.Flags().GetString("json")
	omit, _ := cmd.Flags().GetStringSlice("omit")

	runner := coverage.NewRunner(coverage.Options{
		Packages:  packages,
		Omit:      omit,
		ReportDir: reportDir,
		JSONPath:  jsonPath,
	})
	if _, err := runner.Run(context.Background()); err != nil {
		fmt.Println("coverage failed:", err)
		os.Exit(1)
	}
}

func openDB(configFile string) {
	cfg := loadAppConfig(configFile)
	if err := database.InitDB(cfg.DBPath()); err != nil {
		log.Fatal(err)
	}
}

func listUsers(configFile string) {
	openDB(configFile)
	defer database.CloseDB()

	userService := service.UserService{}
	users, err := userService.ListUsers()
	if err != nil {
		fmt.Println("list users failed:", err)
		return
	}
	for _, u := range users {
		fmt.Printf("%d\t%s\t%s\t%s\n", u.Id, u.Name, u.Email, u.UserType)
	}
}

func addUser(configFile, name, email, userType, token string) {
	openDB(configFile)
	defer database.CloseDB()

	userService := service.UserService{}
	user, err := userService.CreateUser(name, email, model.UserType(userType), token)
	if err != nil {
		fmt.Println("add user failed:", err)
		return
	}
	fmt.Printf("added user %d (%s)\n", user.Id, user.UserType)
}

func setUserType(configFile string, id int, userType string) {
	openDB(configFile)
	defer database.CloseDB()

	userService := service.UserService{}
	if _, err := userService.UpdateUserType(id, model.UserType(userType)); err != nil {
		fmt.Println("set user type failed:", err)
		return
	}
	fmt.Println("set user type success")
}

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Println("load .env:", err)
	}

	var configFile string

	var rootCmd = &cobra.Command{
		Use: "eventum",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "TOML or YAML config file")

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer(configFile)
		},
	}

	var coverageCmd = &cobra.Command{
		Use:   "coverage [packages]",
		Short: "Run the test suite with coverage and write the report",
		Run: func(cmd *cobra.Command, args []string) {
			runCoverage(cmd, args)
		},
	}
	coverageCmd.Flags().String("report-dir", coverage.DefaultReportDir, "directory for the HTML report")
	coverageCmd.Flags().String("json", "", "also write a JSON summary to this file")
	coverageCmd.Flags().StringSlice("omit", coverage.DefaultOmit, "file patterns left out of the report")

	var userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List users",
		Run: func(cmd *cobra.Command, args []string) {
			listUsers(configFile)
		},
	}

	var addCmd = &cobra.Command{
		Use:   "add",
		Short: "Add a user",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			userType, _ := cmd.Flags().GetString("type")
			token, _ := cmd.Flags().GetString("token")
			addUser(configFile, name, email, userType, token)
		},
	}
	addCmd.Flags().String("name", "", "display name")
	addCmd.Flags().String("email", "", "email address")
	addCmd.Flags().String("type", "", "user type: user, editor, publisher or admin")
	addCmd.Flags().String("token", "", "identity provider token")

	var setTypeCmd = &cobra.Command{
		Use:   "set-type",
		Short: "Change a user's type",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetInt("id")
			userType, _ := cmd.Flags().GetString("type")
			setUserType(configFile, id, userType)
		},
	}
	setTypeCmd.Flags().Int("id", 0, "user id")
	setTypeCmd.Flags().String("type", "", "new user type")

	userCmd.AddCommand(listCmd, addCmd, setTypeCmd)
	rootCmd.AddCommand(runCmd, coverageCmd, userCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
