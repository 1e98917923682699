package mock

import explainer "github.com/The-ChandanKV/AI-Code-Explainer"

var _ explainer.ResultCache = (*ResultCache)(nil)

// ResultCache is a mock implementation of explainer.ResultCache.
type ResultCache struct {
	GetFn func(key string) (*explainer.ExplanationResult, bool)
	PutFn func(key string, result *explainer.ExplanationResult)
}

func (c *ResultCache) Get(key string) (*explainer.ExplanationResult, bool) {
	return c.GetFn(key)
}

func (c *ResultCache) Put(key string, result *explainer.ExplanationResult) {
	c.PutFn(key, result)
}
