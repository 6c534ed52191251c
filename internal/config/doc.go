// Package config loads regions.json, the optional project file that tells
// the regions CLI where generated code goes and which answers to assume.
//
//	{
//	  "module": "example.com/shop",
//	  "paths": {
//	    "lib": "app/regions",
//	    "routes": "app/routes"
//	  },
//	  "defaults": {
//	    "strategy": "load-function",
//	    "validator": "openapi"
//	  }
//	}
//
// A project without regions.json uses the defaults, and the module path is
// read from go.mod.
package config
