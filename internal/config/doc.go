// Package config provides configuration parsing for vreconcile.
//
// The configuration is stored in vreconcile.json. This package handles
// loading, saving, and validating it. Every field is optional.
//
// # Configuration File Structure
//
//	{
//	  "logLevel": "debug",
//	  "logFormat": "json",
//	  "metrics": {
//	    "namespace": "vreconcile"
//	  },
//	  "server": {
//	    "host": "0.0.0.0",
//	    "port": 7070
//	  },
//	  "scenarios": {
//	    "dir": "./scenarios",
//	    "bucket": "my-scenarios",
//	    "prefix": "ui/",
//	    "region": "eu-west-1"
//	  },
//	  "engine": {
//	    "maxDeferred": 64
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
