/*
Package markup provides a small, declarative way to describe HTML documents
as trees of immutable nodes.

A Node is an element, an attribute, a text run, a comment, a group of other
nodes, or nothing at all: a nil Node is valid everywhere a Node is accepted
and simply produces no output. This lets callers pass optional content
straight through without branching at every call site.

Nodes are only descriptions. Rendering materializes them into a fresh
golang.org/x/net/html tree and serializes it in a single pass, so the same
Node values can be shared between goroutines and rendered any number of
times.
*/
package markup
