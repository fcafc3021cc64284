// Package config loads and validates the ringbuf demo configuration.
//
// Files may be JSON (.json) or YAML (.yaml, .yml). Values not present in the
// file keep the defaults from Default:
//
//	capacity: 10
//	inserts: 4
//	removes: 2
//	log:
//	  level: info
//	  format: json
//	metrics:
//	  enabled: false
//	  port: 9090
//	  path: /metrics
//
// Validation failures wrap errors.ErrInvalidConfig and classify as invalid.
package config
