package cascade

import (
	"context"
	"log"
	"strings"

	"newsdesk/types"
)

// Strategy names recorded on cascade results.
const (
	StrategyRewrite     = "rewrite"
	StrategyTranslate   = "translate"
	StrategyPassthrough = "passthrough"
)

// Result is the cascade output for one item. Draft is never nil: the
// passthrough strategy has no external dependency and cannot fail.
type Result struct {
	Draft *types.Draft
	// Payload is the text the cascade fed to its strategies; the
	// normalizer uses it as the body fallback.
	Payload  string
	Strategy string
}

// Cascade tries transformation strategies in fixed priority order, stopping
// at the first that yields a usable draft. Each strategy's failure is logged
// and isolated; it never aborts the cycle, it advances to the next strategy.
type Cascade struct {
	rewriter   Rewriter
	translator Translator
	targetLang string
}

// New builds a cascade. Either collaborator may be nil, in which case its
// strategy is skipped.
func New(rewriter Rewriter, translator Translator, targetLang string) *Cascade {
	return &Cascade{
		rewriter:   rewriter,
		translator: translator,
		targetLang: targetLang,
	}
}

// Transform produces a draft for the item. Strategy order: AI rewrite,
// translation, verbatim passthrough.
func (c *Cascade) Transform(ctx context.Context, item *types.SourceItem) Result {
	payload := BuildPayload(item)

	if c.rewriter != nil {
		draft, err := c.rewriter.Rewrite(ctx, item, payload)
		if err != nil {
			log.Printf("cascade: rewrite failed for %s: %v (trying translation)", item.ID, err)
		} else if draft != nil {
			draft.Language = c.targetLang
			return Result{Draft: draft, Payload: payload, Strategy: StrategyRewrite}
		}
	}

	if c.translator != nil {
		if draft := c.translate(ctx, item, payload); draft != nil {
			return Result{Draft: draft, Payload: payload, Strategy: StrategyTranslate}
		}
	}

	return Result{Draft: passthrough(item), Payload: payload, Strategy: StrategyPassthrough}
}

// translate runs Strategy B: title+body through the translation endpoint,
// first line of the output becoming the title.
func (c *Cascade) translate(ctx context.Context, item *types.SourceItem, payload string) *types.Draft {
	translated, err := c.translator.Translate(ctx, item.Title+"\n"+payload, c.targetLang)
	if err != nil {
		log.Printf("cascade: translation failed for %s: %v (falling back to passthrough)", item.ID, err)
		return nil
	}
	translated = strings.TrimSpace(translated)
	if translated == "" {
		return nil
	}

	title := translated
	body := ""
	if idx := strings.IndexByte(translated, '\n'); idx >= 0 {
		title = strings.TrimSpace(translated[:idx])
		body = strings.TrimSpace(translated[idx+1:])
	}

	return &types.Draft{
		Title:    title,
		Content:  body,
		Market:   item.Market,
		Language: c.targetLang,
		Fallback: true,
	}
}

// passthrough runs Strategy C: the original title with the first non-empty
// of body, summary, title as the content.
func passthrough(item *types.SourceItem) *types.Draft {
	content := item.Content
	if strings.TrimSpace(content) == "" {
		content = item.Summary
	}
	if strings.TrimSpace(content) == "" {
		content = item.Title
	}

	return &types.Draft{
		Title:    item.Title,
		Content:  content,
		Summary:  item.Summary,
		Market:   item.Market,
		Fallback: true,
		Raw:      true,
	}
}
