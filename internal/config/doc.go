// Package config provides configuration parsing for vdomkit projects.
//
// The configuration is stored in vdomkit.json at the project root;
// vdomkit.yaml and vdomkit.yml are read as well. This package handles
// loading, saving and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "demo",
//	  "dev": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vdomkit",
//	    "path": "/metrics"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "vdomkit"
//	  },
//	  "snapshot": {
//	    "dir": "snapshots",
//	    "bucket": "",
//	    "prefix": "snapshots/",
//	    "region": "us-east-1",
//	    "endpoint": "",
//	    "format": "html"
//	  }
//	}
//
// Missing fields take the defaults of New.
package config
