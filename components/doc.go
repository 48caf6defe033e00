// Package components provides the stock ecs components: Transform,
// Sprite, Follow, Tween and Script.
package components
