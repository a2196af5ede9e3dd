// Package publish uploads a static build to an S3-compatible bucket.
//
//	client, err := publish.NewS3Client(cfg.Publish)
//	if err != nil {
//	    return err
//	}
//	p, err := publish.New(client, cfg.Publish)
//	if err != nil {
//	    return err
//	}
//	report, err := p.Publish(ctx, cfg.OutputPath())
//
// Any endpoint works: AWS, MinIO, Ceph or Hetzner object storage. Requests
// use path-style addressing when an endpoint is configured.
package publish
