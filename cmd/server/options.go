package main

import (
	"strconv"
	"time"
)

// Options is read from the command line, then the environment (a .env file
// is loaded first), then the defaults below.
type Options struct {
	Addr          string        `short:"a" long:"addr" env:"ADDR" description:"HTTP listen address, overrides --port"`
	Port          int           `short:"p" long:"port" env:"PORT" default:"5000" description:"HTTP port"`
	Size          int           `short:"s" long:"size" env:"TABLE_SIZE" default:"10" description:"initial capacity of every table"`
	MaxCapacity   int           `long:"max-capacity" env:"MAX_CAPACITY" default:"10000" description:"largest capacity accepted by reset"`
	TCPAddr       string        `long:"tcp-addr" env:"TCP_ADDR" description:"enable the line protocol on this address"`
	Journal       string        `long:"journal" env:"JOURNAL" default:"memory" choice:"memory" choice:"postgres" choice:"none" description:"operation journal backend"`
	JournalSize   int           `long:"journal-size" env:"JOURNAL_SIZE" default:"1000" description:"records kept per method by the memory journal"`
	PostgresURL   string        `long:"postgres-url" env:"POSTGRESQL_HOST" description:"connection string for the postgres journal"`
	FlushInterval time.Duration `long:"flush-interval" env:"FLUSH_INTERVAL" default:"5s" description:"postgres journal flush interval"`
	WriteBuffer   int           `long:"write-buffer" env:"WRITE_BUFFER_SIZE" default:"1000" description:"postgres journal batch size"`
	LogLevel      string        `short:"l" long:"loglevel" env:"LOG_LEVEL" default:"info" description:"set the logging level [debug, info, notice, warning, error, critical]"`
	LogFile       string        `long:"logfile" env:"LOG_FILE" description:"also write logs to this file, rotated"`
	Graceful      time.Duration `long:"graceful" env:"GRACEFUL_SHUTDOWN" default:"10s" description:"graceful shutdown timeout"`
	CORSOrigins   []string      `long:"cors-origin" env:"CORS_ORIGINS" env-delim:"," description:"allowed CORS origin, repeatable; empty allows any"`
	NoMetrics     bool          `long:"no-metrics" env:"NO_METRICS" description:"disable the /metrics endpoint"`
}

func (o *Options) listenAddr() string {
	if o.Addr != "" {
		return o.Addr
	}
	return ":" + strconv.Itoa(o.Port)
}
