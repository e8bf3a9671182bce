package librariesio

import (
	"context"

	"github.com/quibraries/quibraries/pkg/errors"
)

// Subscriptions lists the projects the key's owner is subscribed to.
func (c *Client) Subscriptions(ctx context.Context, opts ListOptions) (Result, error) {
	return c.Do(ctx, OpSubscriptions, opts.apply(Args{}))
}

// Subscribe subscribes to release notifications for a project.
//
// The API has been seen to ignore includePrerelease on create; use
// UpdateSubscription to change it afterwards if it did not stick.
func (c *Client) Subscribe(ctx context.Context, platform, name string, includePrerelease bool) (Result, error) {
	return c.Do(ctx, OpSubscribe, Args{Platform: platform, Project: name, IncludePrerelease: includePrerelease})
}

// Subscription returns the subscription for a project. A project that is
// not subscribed to yields a *RemoteError with status 404.
func (c *Client) Subscription(ctx context.Context, platform, name string) (Result, error) {
	return c.Do(ctx, OpSubscription, Args{Platform: platform, Project: name})
}

// IsSubscribed reports whether the key's owner is subscribed to a project.
func (c *Client) IsSubscribed(ctx context.Context, platform, name string) (bool, error) {
	_, err := c.Subscription(ctx, platform, name)
	switch {
	case err == nil:
		return true, nil
	case errors.IsNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

// UpdateSubscription changes whether prerelease versions trigger notifications.
func (c *Client) UpdateSubscription(ctx context.Context, platform, name string, includePrerelease bool) (Result, error) {
	return c.Do(ctx, OpUpdateSubscription, Args{Platform: platform, Project: name, IncludePrerelease: includePrerelease})
}

// Unsubscribe stops release notifications for a project.
// The response body, usually empty, is discarded.
func (c *Client) Unsubscribe(ctx context.Context, platform, name string) error {
	req, err := Build(OpUnsubscribe, Args{Platform: platform, Project: name})
	if err != nil {
		return err
	}
	_, err = c.tr.Do(ctx, req.Method(), req.Path(), req.Query())
	return err
}
