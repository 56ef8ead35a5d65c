// Package config provides configuration parsing for verbosity projects.
//
// The configuration is stored in verbosity.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "demo",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "readTimeout": "60s",
//	    "writeTimeout": "10s",
//	    "heartbeatInterval": "30s"
//	  },
//	  "router": {
//	    "mountId": "page-mount",
//	    "maxRedirects": 16,
//	    "tracerName": "verbosity/router"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "verbosity",
//	    "path": "/metrics"
//	  },
//	  "routes": [
//	    {"pattern": "/", "title": "Home"},
//	    {"pattern": "/users/:id", "title": "User"},
//	    {"pattern": "/old", "redirect": "/"}
//	  ]
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.Address())
package config
