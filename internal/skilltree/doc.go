// Package skilltree turns exported diagram markup into page templates.
//
// A diagram is a flat SVG in which every skill is drawn as a rect followed by
// a sibling group holding its label. Transform locates each label, normalizes
// it into a skill identifier, and rewrites the tree in two passes:
//
//  1. the rect gets the "skill" class, a data-skill attribute and a fill whose
//     hue is a template expression over skills.<identifier>;
//  2. the label container is replaced by a control fragment: a link to the
//     skill page and a 0-100 range input that recolours the rect and reports
//     the new value to the update endpoint.
//
// The result is wrapped in a layout skeleton and stored unrendered. Values are
// substituted per request by the template renderer.
package skilltree
