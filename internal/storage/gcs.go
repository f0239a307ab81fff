package storage

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// signedURLTTL keeps bucket images reachable for the practical
// lifetime of a saved template without re-signing on every load.
const signedURLTTL = 7 * 24 * time.Hour

// BucketImages lists image objects under the templates/ prefix of the
// given bucket and returns a signed read URL for each. Any failure is
// logged and an empty list returned; the cloud source is optional.
func BucketImages(ctx context.Context, bucket string) []string {
	if bucket == "" {
		return nil
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		log.Printf("storage: client init failed: %v", err)
		return nil
	}
	defer client.Close()

	var out []string
	it := client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: "templates/"})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("storage: list objects failed: %v", err)
			return out
		}
		if !isImage(attrs.Name) {
			continue
		}
		url, err := client.Bucket(bucket).SignedURL(attrs.Name, &storage.SignedURLOptions{
			Method:  "GET",
			Expires: time.Now().Add(signedURLTTL),
		})
		if err != nil {
			log.Printf("storage: sign url for %s failed: %v", attrs.Name, err)
			continue
		}
		out = append(out, url)
	}
	return out
}
