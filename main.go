/*
 * Altair8K - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"altair8k/internal/basic"
	"altair8k/internal/config"
	"altair8k/internal/logger"
	"altair8k/internal/mbf"
	"altair8k/internal/repl"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "altair8k.toml", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log to stderr as well as the log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	settings, err := config.Load(*optConfig)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	logPath := settings.LogPath
	if *optLogFile != "" {
		logPath = *optLogFile
	}

	var file *os.File
	if logPath != "" {
		file, _ = os.Create(logPath)
	}
	debug := settings.Debug || *optDebug
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(Logger)

	Logger.Info("Altair8K BASIC started")

	in := basic.New(settings.ImageSize)

	if settings.RNDSeed != 0 {
		in.RND(mbf.FromInt32(-settings.RNDSeed))
	}

	if settings.AutoloadPath != "" {
		data, err := os.ReadFile(settings.AutoloadPath)
		if err != nil {
			Logger.Error("autoload: " + err.Error())
		} else if err := in.Load(data); err != nil {
			Logger.Error("autoload: " + err.Error())
		}
	}

	repl.ConsoleReader(in)

	Logger.Info("Altair8K BASIC exiting")
}
