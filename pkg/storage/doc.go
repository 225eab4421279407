// Package storage uploads media files and backups to S3-compatible object storage.
//
//	s, err := storage.NewS3(storage.Config{
//		Bucket:    "b2bnews-media",
//		AccessKey: os.Getenv("S3_ACCESS_KEY"),
//		SecretKey: os.Getenv("S3_SECRET_KEY"),
//		Endpoint:  "http://localhost:9000", // MinIO
//		PathStyle: true,
//		PublicURL: "https://cdn.example.com",
//	})
//
//	info, err := s.Put(ctx, storage.Object{Prefix: "media", Body: f, Size: size})
//	// info.URL is the public URL of the uploaded file.
//
// Put sniffs the content type when none is given and rejects files that break the
// configured Rules. [Memory] implements the same interface for tests.
package storage
