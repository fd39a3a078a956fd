package main

import "github.com/spf13/viper"

var configKeys = []string{"log-dir", "concurrency", "ocr-alt", "ocr-lang", "report", "verbose"}

type config struct {
	LogDir      string
	Concurrency int
	OCRAlt      bool
	OCRLang     string
	Report      string
	Verbose     bool
}

func loadConfig(v *viper.Viper) config {
	return config{
		LogDir:      v.GetString("log-dir"),
		Concurrency: v.GetInt("concurrency"),
		OCRAlt:      v.GetBool("ocr-alt"),
		OCRLang:     v.GetString("ocr-lang"),
		Report:      v.GetString("report"),
		Verbose:     v.GetBool("verbose"),
	}
}
