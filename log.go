package main

import (
	"io/ioutil"
	"log"
	"os"
)

const logFlags = log.Ldate | log.Lmicroseconds | log.LUTC

var (
	Debug = log.New(ioutil.Discard, "DEB: ", logFlags)
	Info  = log.New(os.Stdout, "INF: ", logFlags)
	Error = log.New(os.Stderr, "ERR: ", logFlags)
)

func logInit(conf config) {

	debugHandle := ioutil.Discard
	if *conf.logVerbose {
		debugHandle = os.Stderr
	}

	Debug = log.New(debugHandle, "DEB: ", logFlags)
	Info = log.New(os.Stdout, "INF: ", logFlags)
	Error = log.New(os.Stderr, "ERR: ", logFlags)

	// no condition here, as you'll only see the message if
	// Verbose logging really is enabled!
	Debug.Printf("Verbose logging enabled")

}
