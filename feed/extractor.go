package feed

import (
	"log"
	"sync"

	"newsdesk/config"
	"newsdesk/types"

	readability "github.com/go-shiori/go-readability"
)

// ExtractMissingContent fetches full text for items whose feed entry carried
// no body, using a bounded worker pool. Per-item failures are logged and the
// item keeps its (empty) content; the cascade passthrough still covers it.
func ExtractMissingContent(items []*types.SourceItem) {
	var wg sync.WaitGroup
	itemChan := make(chan *types.SourceItem, len(items))

	for i := 0; i < config.ExtractWorkers; i++ {
		go func(workerID int) {
			for item := range itemChan {
				if err := extractContent(item); err != nil {
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, item.Link, err)
				}
				wg.Done()
			}
		}(i)
	}

	for _, item := range items {
		if item.Content != "" || item.Link == "" {
			continue
		}
		wg.Add(1)
		itemChan <- item
	}

	wg.Wait()
	close(itemChan)
}

func extractContent(item *types.SourceItem) error {
	extracted, err := readability.FromURL(item.Link, config.ExtractTimeout)
	if err != nil {
		return err
	}

	item.Content = extracted.TextContent
	if item.Summary == "" {
		item.Summary = extracted.Excerpt
	}
	if item.Thumbnail == "" {
		item.Thumbnail = extracted.Image
	}
	return nil
}
