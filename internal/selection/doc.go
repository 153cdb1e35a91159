// Package selection holds the active selection of a viewport and the rules
// for combining a pick into it.
//
// A Set is an ordered list of unique candidates plus an active element.
// Combine folds incoming candidates into an existing Set under one of three
// modes. Store is the mutable current selection with change notification;
// every component that must notice external edits subscribes to it.
package selection
