/*
Package pages composes the static HTML pages of the Syzygy endgame
tablebase site.

Every page shares one layout: a head with fixed metadata and a versioned
stylesheet, a left and a right column, a footer with attribution and
navigation, and an optional banner warning that the site runs in
development mode. Page builders only supply the column content and a title.

Builders are pure apart from the modification-time lookups performed by the
AssetResolver, and return a markup.Node ready to be rendered with
markup.Render.
*/
package pages
