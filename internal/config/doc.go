// Package config loads a11ydocs.json, the site configuration file.
//
// A missing file is not an error for commands that can run on defaults; use
// LoadOrDefault for those. Environment variables override file values so the
// same site can be deployed with different Redis and S3 endpoints:
//
//	A11YDOCS_ADDR         server.address
//	A11YDOCS_REDIS_ADDR   cache.redisAddr (also enables the cache)
//	A11YDOCS_S3_BUCKET    publish.bucket
//	A11YDOCS_S3_ENDPOINT  publish.endpoint
//	A11YDOCS_S3_REGION    publish.region
//	AWS_ACCESS_KEY_ID     publish credentials
//	AWS_SECRET_ACCESS_KEY publish credentials
package config
