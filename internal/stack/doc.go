// Package stack loads stack definitions: the versioned software
// distributions a topology is deployed from and the config types each
// declares.
//
// Definitions are YAML documents:
//
//	name: HDP
//	version: "2.6"
//	configTypes: [cluster-env]
//	services:
//	  - name: HDFS
//	    configTypes: [core-site, hdfs-site]
//
// A [Repository] looks definitions up by [topology.Ref]. [DirRepository]
// reads NAME-VERSION.yaml files from a directory, [S3Repository] reads the
// same layout from an S3-compatible bucket, and [MemoryRepository] serves
// in-memory definitions.
package stack
