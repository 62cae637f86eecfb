package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qc71/QC71Manager/background"
	"github.com/qc71/QC71Manager/controller"
	"github.com/qc71/QC71Manager/system/hotkey"
	"github.com/qc71/QC71Manager/util"

	suture "github.com/thejerf/suture/v4"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Compile time injected variables
var (
	Version = "v0.0.0-dev"
)

func main() {

	var (
		configPath = flag.String("config", defaultConfigPath, "path to the configuration file")
		dryRun     = flag.Bool("dry-run", os.Getenv("DRY_RUN") != "", "run without hardware IOs")
	)
	flag.Parse()

	conf, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[supervisor] cannot load configuration: %+v\n", err)
	}

	if conf.LogPath != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   conf.LogPath,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		})
	}

	log.Printf("QC71Manager version: %s\n", Version)

	model := hotkey.ModelFromString(conf.Model)
	if model == hotkey.ModelUnknown {
		model = hotkey.DetectModel()
	}
	log.Printf("[supervisor] platform variant: %s\n", model)

	notifier := background.NewNotifier()

	controllerConfig := controller.RunConfig{
		DryRun:     *dryRun || conf.DryRun,
		Model:      model,
		StatePath:  conf.StatePath,
		ConfigPath: *configPath,
		NotifierCh: notifier.C,
	}

	dep, err := controller.GetDependencies(controllerConfig)
	if err != nil {
		log.Fatalf("[supervisor] cannot get dependencies: %+v\n", err)
	}

	control, err := controller.New(controller.Config{
		Dispatcher: dep.Dispatcher,
		Emitter:    dep.Emitter,
		Listeners:  controller.Listeners(controllerConfig),
		Registry:   dep.ConfigRegistry,
		NotifierCh: notifier.C,
		ConfigPath: *configPath,
	}, dep)
	if err != nil {
		log.Fatalf("[supervisor] cannot create controller: %+v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	backgroundSupervisor := suture.New("backgroundSupervisor", suture.Spec{})
	backgroundSupervisor.Add(notifier)

	if conf.CheckUpdates {
		updater, err := background.NewUpdater(Version, "qc71/QC71Manager", notifier.C)
		if err != nil {
			log.Fatalf("[supervisor] cannot create updater: %+v\n", err)
		}
		backgroundSupervisor.Add(updater)
	}

	controllerSupervisor := suture.New("controllerSupervisor", suture.Spec{})
	controllerSupervisor.Add(control)

	rootSupervisor := suture.New("Supervisor", suture.Spec{})
	rootSupervisor.Add(backgroundSupervisor)
	rootSupervisor.Add(controllerSupervisor)

	sigc := make(chan os.Signal, 1)

	go func() {
		notifier.C <- util.Notification{
			Title:   "QC71Manager",
			Message: "Starting up QC71Manager Supervisor",
		}
		supervisorErr := rootSupervisor.Serve(ctx)
		if supervisorErr != nil {
			log.Printf("[supervisor] rootSupervisor returns error: %+v\n", supervisorErr)
			sigc <- syscall.SIGTERM
		}
	}()

	signal.Notify(
		sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)

	sig := <-sigc
	log.Printf("[supervisor] signal received: %+v\n", sig)

	cancel()
	dep.ConfigRegistry.Close()
	time.Sleep(time.Second) // 1 second for grace period
}
