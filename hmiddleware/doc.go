/* Copyright (c) 2018 Salesforce
 * All rights reserved.
 * Licensed under the BSD 3-Clause license.
 * For full license text, see LICENSE.txt file in the repo root  or https://opensource.org/licenses/BSD-3-Clause
 */

// Package hmiddleware contains Chi style (function that takes and returns a
// HTTP handler) middleware used around instrumented services: request IDs
// and request logging. The Prometheus middleware lives in the prommetrics
// subpackage.
package hmiddleware
