//go:build linux

package main

import (
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/systemboot/enterprise/pkg/boot"
	"github.com/systemboot/enterprise/pkg/platform/linuxboot"
	"github.com/systemboot/enterprise/pkg/recovery"
)

var (
	rootDir        = flag.String("root", "", "Directory the boot volume is mounted at")
	device         = flag.String("device", "", "Block device of the boot volume, looked up in the mount table")
	initrd         = flag.String("initrd", "", `Boot volume path of an initramfs to start the loader with, e.g. \efi\boot\initrd.img`)
	doDebug        = flag.Bool("D", false, "Print debug output")
	logPath        = flag.String("log", "stderr", "Where debug output goes")
	requirePayload = flag.Bool("require-payload", true, "Refuse to show the menu if the payload is missing")
	delay          = flag.Duration("delay", recovery.DefaultDelay, "How long errors stay on screen")
)

func newLogger() (*zap.Logger, error) {
	if !*doDebug {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{*logPath}
	cfg.ErrorOutputPaths = []string{*logPath}
	return cfg.Build()
}

func main() {
	flag.Parse()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("cannot set up logging: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	p, err := linuxboot.New(linuxboot.Config{
		Root:   *rootDir,
		Device: *device,
		Initrd: *initrd,
		Log:    logger,
	})
	if err != nil {
		// no console to report on yet
		log.Print(err)
		time.Sleep(*delay)
		os.Exit(1)
	}

	s := boot.NewSession(p, logger)
	s.Layout.RequirePayload = *requirePayload
	s.Delay = *delay

	err = s.Run()
	_ = p.Close()
	if err != nil {
		logger.Error("boot failed", zap.Error(err))
		os.Exit(1)
	}
}
